package krpcgen

import (
	"fmt"
	"io"
)

// astPrinter renders a Module as an indented tree, one definition per
// top-level entry, for the --dump-ast debug flag.
type astPrinter struct {
	tp *treePrinter[string]
}

// PrintModule writes a hierarchical dump of mod to w.
func PrintModule(w io.Writer, mod Module) error {
	p := &astPrinter{tp: newTreePrinter(func(s string, _ string) string { return s })}
	for _, def := range mod {
		if err := def.Accept(p); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, p.tp.output.String())
	return err
}

func (p *astPrinter) line(format string, args ...any) {
	p.tp.pwritel(fmt.Sprintf(format, args...))
}

// argTypesString renders a procedure's argument list the way it was
// written, with a bare "void" standing in for the empty list.
func argTypesString(args []Type) string {
	if len(args) == 0 {
		return "void"
	}
	s := args[0].String()
	for _, t := range args[1:] {
		s += ", " + t.String()
	}
	return s
}

func (p *astPrinter) VisitConst(d *ConstDef) error {
	p.line("const %s = %s", d.Name, d.Value.String())
	return nil
}

func (p *astPrinter) VisitTypedef(d *TypedefDef) error {
	p.line("typedef %s %s", d.Name, d.Type.String())
	return nil
}

func (p *astPrinter) VisitEnum(d *EnumDef) error {
	p.line("enum %s {", d.Name)
	p.tp.indent("  ")
	for _, name := range d.Names {
		p.line("%s = %d", name, d.Values[name])
	}
	p.tp.unindent()
	p.line("}")
	return nil
}

func (p *astPrinter) VisitStruct(d *StructDef) error {
	p.line("struct %s {", d.Name)
	p.tp.indent("  ")
	for _, f := range d.Fields {
		p.line("%s %s", f.Type.String(), f.Name)
	}
	p.tp.unindent()
	p.line("}")
	return nil
}

func (p *astPrinter) VisitUnion(d *UnionDef) error {
	p.line("union %s switch (%s %s) {", d.Name, d.Discriminant.Type.String(), d.Discriminant.Name)
	p.tp.indent("  ")
	for _, c := range d.Cases {
		if c.IsDefault {
			p.line("default: %s %s", c.Field.Type.String(), c.Field.Name)
			continue
		}
		labels := ""
		for i, v := range c.Values {
			if i > 0 {
				labels += ", "
			}
			labels += v.String()
		}
		p.line("case %s: %s %s", labels, c.Field.Type.String(), c.Field.Name)
	}
	p.tp.unindent()
	p.line("}")
	return nil
}

func (p *astPrinter) VisitProgram(d *ProgramDef) error {
	p.line("program %s {", d.Name)
	p.tp.indent("  ")
	for _, v := range d.Versions {
		p.line("version %s {", v.Name)
		p.tp.indent("  ")
		for _, proc := range v.Procedures {
			p.line("%s %s(%s) = %d", proc.ResultType.String(), proc.Name, argTypesString(proc.ArgTypes), proc.Number)
		}
		p.tp.unindent()
		p.line("} = %d", v.Number)
	}
	p.tp.unindent()
	p.line("} = %d", d.Number)
	return nil
}
