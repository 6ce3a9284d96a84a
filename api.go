package krpcgen

import "os"

// ModuleFromBytes parses and semantically analyzes a complete RPCL
// specification already held in memory.
func ModuleFromBytes(src []byte) (Module, error) {
	return ParseModule(src)
}

// ModuleFromFile reads and parses the RPCL specification at path.
func ModuleFromFile(path string) (Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ModuleFromBytes(src)
}

// Generate runs the full pipeline described by opts: read and parse
// the specification, index it into a Handle, and emit the C client
// and server tree. When opts.DumpAST is set it prints the parsed
// Module to stdout instead of emitting sources.
func Generate(opts *GeneratorOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	mod, err := ModuleFromFile(opts.SpecificationPath)
	if err != nil {
		return err
	}
	if opts.DumpAST {
		return PrintModule(os.Stdout, mod)
	}
	handle, err := NewHandle(mod)
	if err != nil {
		return err
	}
	return EmitModule(handle, opts)
}
