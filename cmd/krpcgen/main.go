package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/krpcgen/krpcgen"
)

func readArgs() *krpcgen.GeneratorOptions {
	opts := krpcgen.NewGeneratorOptions()

	pflag.StringVar(&opts.OutputPath, "path", opts.OutputPath, "Destination directory for generated sources")
	pflag.StringVar(&opts.SpecificationPath, "specification", opts.SpecificationPath, "Path to the input RPCL file")
	pflag.IntVar(&opts.VLALimit, "vla-limit", opts.VLALimit, "Compile-time maximum for unbounded variable-length arrays")
	pflag.BoolVar(&opts.DumpAST, "dump-ast", false, "Print the parsed module instead of generating C sources")
	pflag.Parse()

	return opts
}

func main() {
	opts := readArgs()

	if err := krpcgen.Generate(opts); err != nil {
		fmt.Fprintf(os.Stderr, "krpcgen: %s\n", err)
		os.Exit(1)
	}
}
