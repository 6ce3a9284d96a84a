package krpcgen

import (
	"fmt"
	"os"
	"path/filepath"
)

// EmitModule writes the complete generated C tree for h into
// opts.OutputPath: the shared constants.h/types.h/Makefile, the
// client.{h,c}/common.{h,c} glue, and one client+server subtree per
// program. Every file is attempted even after a failure so a single
// bad path doesn't hide the rest of the run's errors; the first error
// is what Generate ultimately returns.
func EmitModule(h *Handle, opts *GeneratorOptions) error {
	w := newTypeWalker(h, opts)
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	record(writeFile(opts, "constants.h", emitTopConstants(h, opts)))
	record(writeFile(opts, "types.h", EmitTypesHeader(h)))
	record(writeFile(opts, "types_xdr.c", EmitXDRSource(h, opts)))
	record(writeFile(opts, "clients/client.h", emitClientHeader()))
	record(writeFile(opts, "clients/client.c", emitClientCommonSource(h)))
	record(writeFile(opts, "servers/common.h", emitServerCommonHeader()))
	record(writeFile(opts, "servers/common.c", emitServerCommonSource(h)))

	for _, progName := range h.Programs.Keys() {
		prog, _ := h.Programs.Get(progName)
		tree := EmitProgram(h, w, prog)
		for path, content := range tree.files {
			record(writeFile(opts, path, content))
		}
	}

	record(writeFile(opts, "Makefile", emitMakefile(h)))
	return firstErr
}

func writeFile(opts *GeneratorOptions, relPath, content string) error {
	full := filepath.Join(opts.OutputPath, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("krpcgen: creating directory for %s: %w", relPath, err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("krpcgen: creating %s: %w", relPath, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("krpcgen: writing %s: %w", relPath, err)
	}
	return nil
}

func emitTopConstants(h *Handle, opts *GeneratorOptions) string {
	out := newOutputWriter()
	header(out, "constants.h", func() {
		out.writeilf("#define VLA_LIMIT %d", opts.VLALimit)
		out.blank()
		for _, name := range h.Consts.Keys() {
			c, _ := h.Consts.Get(name)
			out.writeilf("#define %s %s", c.Name, c.Value.String())
		}
	})
	return out.String()
}

func emitClientHeader() string {
	out := newOutputWriter()
	header(out, "client.h", func() {
		out.writeil("#include <linux/sunrpc/clnt.h>")
		out.blank()
		out.writeil("struct rpc_clnt *krpcgen_clnt_create(const struct rpc_program *prog,")
		out.writeil("\t\t\t\t    u32 version, struct sockaddr *addr,")
		out.writeil("\t\t\t\t    size_t addrlen);")
	})
	return out.String()
}

// emitClientCommonSource renders the single rpc_create wrapper every
// generated program's client call wrappers share, rather than
// duplicating the rpc_create_args setup in each program.c.
func emitClientCommonSource(h *Handle) string {
	out := newOutputWriter()
	out.writeilf(`#include "client.h"`)
	out.blank()
	out.writeil("struct rpc_clnt *krpcgen_clnt_create(const struct rpc_program *prog,")
	out.writeil("\t\t\t\t    u32 version, struct sockaddr *addr,")
	out.writeil("\t\t\t\t    size_t addrlen)")
	out.writeil("{")
	out.push()
	out.writeil("struct rpc_create_args args = {")
	out.push()
	out.writeil(".net = &init_net,")
	out.writeil(".protocol = XPRT_TRANSPORT_TCP,")
	out.writeil(".address = addr,")
	out.writeil(".addrsize = addrlen,")
	out.writeil(".servername = prog->name,")
	out.writeil(".program = prog,")
	out.writeil(".version = version,")
	out.writeil(".authflavor = RPC_AUTH_UNIX,")
	out.pop()
	out.writeil("};")
	out.writeil("return rpc_create(&args);")
	out.pop()
	out.writeil("}")
	return out.String()
}

func emitServerCommonHeader() string {
	out := newOutputWriter()
	header(out, "common.h", func() {
		out.writeil("#include <linux/sunrpc/svc.h>")
		out.blank()
		out.writeil("int krpcgen_svc_register(struct svc_program *prog, struct net *net);")
		out.writeil("void krpcgen_svc_unregister(struct svc_program *prog, struct net *net);")
	})
	return out.String()
}

// emitServerCommonSource renders the module init/exit glue every
// generated server program shares: registering and tearing down its
// svc_program with the kernel's RPC service layer.
func emitServerCommonSource(h *Handle) string {
	out := newOutputWriter()
	out.writeilf(`#include "common.h"`)
	out.blank()
	out.writeil("int krpcgen_svc_register(struct svc_program *prog, struct net *net)")
	out.writeil("{")
	out.push()
	out.writeil("return svc_register(net, prog, 0, 0, 0, 0, 0);")
	out.pop()
	out.writeil("}")
	out.blank()
	out.writeil("void krpcgen_svc_unregister(struct svc_program *prog, struct net *net)")
	out.writeil("{")
	out.push()
	out.writeil("svc_unregister(net, prog->pg_prog, 0);")
	out.pop()
	out.writeil("}")
	return out.String()
}
