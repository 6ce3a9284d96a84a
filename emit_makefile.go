package krpcgen

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/Makefile.tmpl
var makefileTemplateFS embed.FS

var makefileTemplate = template.Must(template.ParseFS(makefileTemplateFS, "templates/Makefile.tmpl"))

// makefileProgram is the per-program view the Makefile template
// renders: the object file list for its client module and its server
// module, derived from the Handle's program/version tables.
type makefileProgram struct {
	Name          string
	ClientObjects []string
	ServerObjects []string
}

func makefileData(h *Handle) []makefileProgram {
	var progs []makefileProgram
	for _, name := range h.Programs.Keys() {
		prog, _ := h.Programs.Get(name)
		mp := makefileProgram{Name: prog.Name}
		mp.ClientObjects = append(mp.ClientObjects,
			"clients/"+prog.Name+"/program.o",
			"clients/"+prog.Name+"/authentication.o")
		mp.ServerObjects = append(mp.ServerObjects,
			"servers/"+prog.Name+"/program.o",
			"servers/"+prog.Name+"/authentication.o")
		for _, ver := range prog.Versions {
			base := prog.Name + "/" + ver.Name
			mp.ClientObjects = append(mp.ClientObjects,
				"clients/"+base+"/version.o",
				"clients/"+base+"/procedure_xdr.o",
				"clients/"+base+"/procedure_api.o")
			mp.ServerObjects = append(mp.ServerObjects,
				"servers/"+base+"/version.o",
				"servers/"+base+"/procedure_xdr.o",
				"servers/"+base+"/procedure_handlers.o")
		}
		progs = append(progs, mp)
	}
	return progs
}

// emitMakefile renders the top-level Makefile driving the kernel
// build system, enumerating every program's client and server object
// files.
func emitMakefile(h *Handle) string {
	var b strings.Builder
	data := struct {
		Programs []makefileProgram
	}{Programs: makefileData(h)}
	if err := makefileTemplate.Execute(&b, data); err != nil {
		panic("krpcgen: rendering Makefile template: " + err.Error())
	}
	return b.String()
}
