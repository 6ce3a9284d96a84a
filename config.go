package krpcgen

import "fmt"

// defaultVLALimit bounds a variable-length array's runtime size check
// when a varray declares no explicit maximum.
const defaultVLALimit = 1024

// GeneratorOptions controls a single run of the generator: which
// specification to read, where to write the generated C tree, and a
// couple of knobs the CLI exposes directly.
type GeneratorOptions struct {
	// SpecificationPath is the RPCL file to compile.
	SpecificationPath string
	// OutputPath is the directory the generated C tree is written to.
	OutputPath string
	// VLALimit is the default upper bound applied to a varray (or
	// opaque/string) field that declares no explicit maximum.
	VLALimit int
	// DumpAST, when true, makes Generate print the parsed Module
	// instead of emitting C sources.
	DumpAST bool
}

// NewGeneratorOptions returns the defaults the CLI falls back to when
// a flag isn't provided.
func NewGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		SpecificationPath: "spec.x",
		OutputPath:        ".",
		VLALimit:          defaultVLALimit,
	}
}

// Validate rejects option combinations the generator can't act on.
func (o *GeneratorOptions) Validate() error {
	if o.SpecificationPath == "" {
		return fmt.Errorf("specification path must not be empty")
	}
	if o.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if o.VLALimit <= 0 {
		return fmt.Errorf("vla-limit must be positive, got %d", o.VLALimit)
	}
	return nil
}
