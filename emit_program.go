package krpcgen

import (
	"fmt"
	"strings"
)

// includeGuard derives an include-guard macro from a header's final
// path component: uppercased, non-alphanumerics replaced with
// underscores.
func includeGuard(baseName string) string {
	var b strings.Builder
	for _, r := range baseName {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 32)
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func header(out *outputWriter, baseName string, body func()) {
	guard := includeGuard(baseName)
	out.writeilf("#ifndef %s", guard)
	out.writeilf("#define %s", guard)
	out.blank()
	body()
	out.blank()
	out.writeil("#endif")
}

// procArgName and procResultName are the synthetic typedef-like names
// a procedure's argument and result C types are referred to by —
// void procedures have no argument type at all.
func procArgName(p Procedure) string { return strings.ToLower(p.Name) + "_args" }
func procResultName(p Procedure) string {
	return strings.ToLower(p.Name) + "_res"
}

// procArgStructName names the synthetic struct type bundling a
// multi-argument procedure's arguments, one field per argument in
// declared order — XDR gives a struct the same wire representation as
// its fields encoded back to back, so bundling costs nothing on the
// wire and gives a multi-argument procedure a single C parameter.
func procArgStructName(p Procedure) string { return procArgName(p) + "_t" }

// procArgFields names each of a multi-argument procedure's positional
// arguments arg1, arg2, ... for use as synthetic struct fields.
func procArgFields(p Procedure) []Field {
	fields := make([]Field, len(p.ArgTypes))
	for i, t := range p.ArgTypes {
		fields[i] = Field{Name: fmt.Sprintf("arg%d", i+1), Type: t}
	}
	return fields
}

// cArgType is the C type used to declare and size a procedure's
// argument: void for an empty list, the argument's own type for
// exactly one, or the synthetic bundling struct for more than one.
func cArgType(p Procedure) string {
	switch len(p.ArgTypes) {
	case 0:
		return "void"
	case 1:
		return cTypeName(p.ArgTypes[0])
	default:
		return procArgStructName(p)
	}
}

func cResultType(p Procedure) string {
	if _, ok := p.ResultType.(*VoidType); ok {
		return "void"
	}
	return cTypeName(p.ResultType)
}

// programTree is every generated file for one program, keyed by path
// relative to the configured output root.
type programTree struct {
	files map[string]string
}

func newProgramTree() *programTree {
	return &programTree{files: map[string]string{}}
}

func (t *programTree) put(path, content string) { t.files[path] = content }

// EmitProgram renders the full client and server subtree for one
// program: per-version constants/descriptors/procedure plumbing, a
// program descriptor, and an authentication hook stub on each side.
func EmitProgram(h *Handle, w *typeWalker, prog *ProgramDef) *programTree {
	t := newProgramTree()
	progUpper := strings.ToUpper(prog.Name)

	t.put(fmt.Sprintf("clients/%s/constants.h", prog.Name), emitProgramConstants(prog, progUpper))
	t.put(fmt.Sprintf("servers/%s/constants.h", prog.Name), emitProgramConstants(prog, progUpper))

	t.put(fmt.Sprintf("clients/%s/authentication.h", prog.Name), emitAuthHeader(prog.Name))
	t.put(fmt.Sprintf("clients/%s/authentication.c", prog.Name), emitAuthClientSource(prog))
	t.put(fmt.Sprintf("servers/%s/authentication.h", prog.Name), emitAuthHeader(prog.Name))
	t.put(fmt.Sprintf("servers/%s/authentication.c", prog.Name), emitAuthServerSource(prog))

	t.put(fmt.Sprintf("clients/%s/program.c", prog.Name), emitClientProgramSource(prog))
	t.put(fmt.Sprintf("servers/%s/program.c", prog.Name), emitServerProgramSource(prog))

	for _, ver := range prog.Versions {
		base := fmt.Sprintf("%s/%s", prog.Name, ver.Name)
		t.put(fmt.Sprintf("clients/%s/constants.h", base), emitVersionConstants(prog, ver))
		t.put(fmt.Sprintf("servers/%s/constants.h", base), emitVersionConstants(prog, ver))

		t.put(fmt.Sprintf("clients/%s/version.h", base), emitVersionHeader(prog, ver, true))
		t.put(fmt.Sprintf("clients/%s/version.c", base), emitClientVersionSource(prog, ver))
		t.put(fmt.Sprintf("servers/%s/version.h", base), emitVersionHeader(prog, ver, false))
		t.put(fmt.Sprintf("servers/%s/version.c", base), emitServerVersionSource(prog, ver))

		t.put(fmt.Sprintf("clients/%s/procedures.h", base), emitProceduresHeader(prog, ver, true))
		t.put(fmt.Sprintf("servers/%s/procedures.h", base), emitProceduresHeader(prog, ver, false))

		t.put(fmt.Sprintf("clients/%s/procedure_xdr.c", base), emitProcedureXDR(h, w, prog, ver))
		t.put(fmt.Sprintf("servers/%s/procedure_xdr.c", base), emitProcedureXDR(h, w, prog, ver))

		t.put(fmt.Sprintf("clients/%s/procedure_api.h", base), emitProcedureAPIHeader(prog, ver))
		t.put(fmt.Sprintf("clients/%s/procedure_api.c", base), emitProcedureAPISource(prog, ver))
		t.put(fmt.Sprintf("servers/%s/procedure_handlers.c", base), emitProcedureHandlers(prog, ver))
	}
	return t
}

func emitProgramConstants(prog *ProgramDef, progUpper string) string {
	out := newOutputWriter()
	header(out, "constants.h", func() {
		out.writeilf("#define %s %d", progUpper, prog.Number)
		for _, ver := range prog.Versions {
			out.writeilf("#define %s %d", strings.ToUpper(ver.Name), ver.Number)
		}
	})
	return out.String()
}

func emitVersionConstants(prog *ProgramDef, ver VersionDef) string {
	out := newOutputWriter()
	header(out, "constants.h", func() {
		out.writeilf("#define %s %d", strings.ToUpper(ver.Name), ver.Number)
		for _, p := range ver.Procedures {
			out.writeilf("#define %s %d", strings.ToUpper(p.Name), p.Number)
		}
	})
	return out.String()
}

func emitAuthHeader(progName string) string {
	out := newOutputWriter()
	header(out, "authentication.h", func() {
		out.writeil("#include <linux/sunrpc/auth.h>")
		out.blank()
		out.writeilf("struct rpc_auth *%s_auth_create(struct rpc_clnt *clnt);", progName)
	})
	return out.String()
}

// emitAuthClientSource emits a stub that binds the Unix credential
// flavor by default; a real deployment swaps the flavor here without
// touching generated call sites.
func emitAuthClientSource(prog *ProgramDef) string {
	out := newOutputWriter()
	out.writeilf(`#include "authentication.h"`)
	out.blank()
	out.writeilf("struct rpc_auth *%s_auth_create(struct rpc_clnt *clnt)", prog.Name)
	out.writeil("{")
	out.push()
	out.writeil("return rpcauth_create(&authunix_ops, clnt);")
	out.pop()
	out.writeil("}")
	return out.String()
}

func emitAuthServerSource(prog *ProgramDef) string {
	out := newOutputWriter()
	out.writeilf(`#include "authentication.h"`)
	out.blank()
	out.writeilf("int %s_accept_auth(struct svc_rqst *rqstp)", prog.Name)
	out.writeil("{")
	out.push()
	out.writeil("return SVC_OK;")
	out.pop()
	out.writeil("}")
	return out.String()
}

func emitClientProgramSource(prog *ProgramDef) string {
	out := newOutputWriter()
	out.writeilf(`#include <linux/sunrpc/clnt.h>`)
	out.writeilf(`#include "constants.h"`)
	for _, ver := range prog.Versions {
		out.writeilf(`#include "%s/version.h"`, ver.Name)
	}
	out.blank()
	out.writeilf("static const struct rpc_version *%s_clnt_versions[] = {", prog.Name)
	out.push()
	for _, ver := range prog.Versions {
		out.writeilf("[%d] = &%s_clnt_version,", ver.Number, ver.Name)
	}
	out.pop()
	out.writeil("};")
	out.blank()
	out.writeilf("const struct rpc_program %s_program = {", prog.Name)
	out.push()
	out.writeilf(`.name = "%s",`, prog.Name)
	out.writeilf(".number = %s,", strings.ToUpper(prog.Name))
	out.writeilf(".nrvers = ARRAY_SIZE(%s_clnt_versions),", prog.Name)
	out.writeilf(".version = %s_clnt_versions,", prog.Name)
	out.pop()
	out.writeil("};")
	return out.String()
}

func emitServerProgramSource(prog *ProgramDef) string {
	out := newOutputWriter()
	out.writeilf(`#include <linux/sunrpc/svc.h>`)
	out.writeilf(`#include "constants.h"`)
	for _, ver := range prog.Versions {
		out.writeilf(`#include "%s/version.h"`, ver.Name)
	}
	out.blank()
	out.writeilf("static const struct svc_version *%s_svc_versions[] = {", prog.Name)
	out.push()
	for _, ver := range prog.Versions {
		out.writeilf("[%d] = &%s_svc_version,", ver.Number, ver.Name)
	}
	out.pop()
	out.writeil("};")
	out.blank()
	out.writeilf("struct svc_program %s_svc_program = {", prog.Name)
	out.push()
	out.writeilf(`.pg_name = "%s",`, prog.Name)
	out.writeilf(".pg_prog = %s,", strings.ToUpper(prog.Name))
	out.writeilf(".pg_nvers = ARRAY_SIZE(%s_svc_versions),", prog.Name)
	out.writeilf(".pg_vers = %s_svc_versions,", prog.Name)
	out.pop()
	out.writeil("};")
	return out.String()
}

func emitVersionHeader(prog *ProgramDef, ver VersionDef, client bool) string {
	out := newOutputWriter()
	header(out, "version.h", func() {
		if client {
			out.writeil("#include <linux/sunrpc/clnt.h>")
			out.blank()
			out.writeilf("extern const struct rpc_version %s_clnt_version;", ver.Name)
		} else {
			out.writeil("#include <linux/sunrpc/svc.h>")
			out.blank()
			out.writeilf("extern const struct svc_version %s_svc_version;", ver.Name)
		}
	})
	return out.String()
}

func emitClientVersionSource(prog *ProgramDef, ver VersionDef) string {
	out := newOutputWriter()
	out.writeilf(`#include "version.h"`)
	out.writeilf(`#include "procedures.h"`)
	out.blank()
	out.writeilf("static const struct rpc_procinfo %s_clnt_procedures[] = {", ver.Name)
	out.push()
	for _, p := range ver.Procedures {
		out.writeilf("[%s] = {", strings.ToUpper(p.Name))
		out.push()
		out.writeilf(`.p_proc = %s,`, strings.ToUpper(p.Name))
		out.writeilf(".p_encode = (kxdrproc_t)%s,", xdrProcNameFor(procArgName2(p)))
		out.writeilf(".p_decode = (kxdrproc_t)%s,", xdrProcNameFor(procResultName2(p)))
		out.writeilf(".p_arglen = XDR_QUADLEN(sizeof(%s)),", cArgType(p))
		out.writeilf(".p_replen = XDR_QUADLEN(sizeof(%s)),", cResultType(p))
		out.writeilf(`.p_name = "%s",`, p.Name)
		out.pop()
		out.writeil("},")
	}
	out.pop()
	out.writeil("};")
	out.blank()
	out.writeilf("const struct rpc_version %s_clnt_version = {", ver.Name)
	out.push()
	out.writeilf(".number = %s,", strings.ToUpper(ver.Name))
	out.writeilf(".nrprocs = ARRAY_SIZE(%s_clnt_procedures),", ver.Name)
	out.writeilf(".procs = %s_clnt_procedures,", ver.Name)
	out.pop()
	out.writeil("};")
	return out.String()
}

func emitServerVersionSource(prog *ProgramDef, ver VersionDef) string {
	out := newOutputWriter()
	out.writeilf(`#include "version.h"`)
	out.writeilf(`#include "procedures.h"`)
	out.blank()
	out.writeilf("static const struct svc_procedure %s_svc_procedures[] = {", ver.Name)
	out.push()
	for _, p := range ver.Procedures {
		out.writeilf("[%s] = {", strings.ToUpper(p.Name))
		out.push()
		out.writeilf(".pc_func = %s_svc,", strings.ToLower(p.Name))
		out.writeilf(".pc_decode = (kxdrproc_t)%s,", xdrProcNameFor(procArgName2(p)))
		out.writeilf(".pc_encode = (kxdrproc_t)%s,", xdrProcNameFor(procResultName2(p)))
		if _, isVoid := p.ResultType.(*VoidType); !isVoid {
			out.writeilf(".pc_release = (kxdrproc_t)%s,", releaseName(p))
		}
		out.writeilf(".pc_argsize = sizeof(%s),", cArgType(p))
		out.writeilf(".pc_ressize = sizeof(%s),", cResultType(p))
		out.pop()
		out.writeil("},")
	}
	out.pop()
	out.writeil("};")
	out.blank()
	out.writeilf("const struct svc_version %s_svc_version = {", ver.Name)
	out.push()
	out.writeilf(".vs_vers = %s,", strings.ToUpper(ver.Name))
	out.writeilf(".vs_nproc = ARRAY_SIZE(%s_svc_procedures),", ver.Name)
	out.writeilf(".vs_proc = %s_svc_procedures,", ver.Name)
	out.pop()
	out.writeil("};")
	return out.String()
}

// procArgName2/procResultName2 name the xdr_ function that
// encodes/decodes a procedure's whole argument/result type: a
// NamedType's own name when available, else the synthetic
// per-procedure name — a bare scalar argument, a bundled
// multi-argument struct, and void (which resolves to the library's
// own xdr_void) all fall back to it.
func procArgName2(p Procedure) string {
	switch len(p.ArgTypes) {
	case 0:
		return "void"
	case 1:
		if n, ok := p.ArgTypes[0].(*NamedType); ok {
			return n.Name
		}
	}
	return procArgName(p)
}

func procResultName2(p Procedure) string {
	if _, ok := p.ResultType.(*VoidType); ok {
		return "void"
	}
	if n, ok := p.ResultType.(*NamedType); ok {
		return n.Name
	}
	return procResultName(p)
}

func xdrProcNameFor(name string) string { return "xdr_" + name }

func emitProceduresHeader(prog *ProgramDef, ver VersionDef, client bool) string {
	out := newOutputWriter()
	header(out, "procedures.h", func() {
		out.writeil("#include <linux/sunrpc/xdr.h>")
		out.writeilf(`#include "types.h"`)
		out.blank()
		for _, p := range ver.Procedures {
			if client {
				out.writeilf("int %s(struct rpc_clnt *clnt, %s *argp, %s *resp);",
					strings.ToLower(p.Name), argPtr(p), resPtr(p))
			} else {
				out.writeilf("void %s_svc(%s *argp, %s *resp, struct svc_rqst *rqstp);",
					strings.ToLower(p.Name), argPtr(p), resPtr(p))
			}
			switch len(p.ArgTypes) {
			case 0:
				// void: nothing to wrap, library's own xdr_void applies.
			case 1:
				if _, ok := p.ArgTypes[0].(*NamedType); !ok {
					out.writeilf("bool_t xdr_%s(XDR *, %s *);", procArgName(p), cArgType(p))
				}
			default:
				emitArgsStructDecl(out, p)
				out.writeilf("bool_t xdr_%s(XDR *, %s *);", procArgName(p), procArgStructName(p))
			}
			if _, ok := p.ResultType.(*NamedType); !ok {
				if _, isVoid := p.ResultType.(*VoidType); !isVoid {
					out.writeilf("bool_t xdr_%s(XDR *, %s *);", procResultName(p), cTypeName(p.ResultType))
				}
			}
			if _, isVoid := p.ResultType.(*VoidType); !isVoid {
				out.writeilf("bool_t %s(XDR *, %s *);", releaseName(p), cTypeName(p.ResultType))
			}
		}
	})
	return out.String()
}

// emitArgsStructDecl renders the typedef struct bundling a
// multi-argument procedure's arguments, one field per argument in
// declared order.
func emitArgsStructDecl(out *outputWriter, p Procedure) {
	out.writeilf("typedef struct {")
	out.push()
	for _, f := range procArgFields(p) {
		out.writeilf("%s;", cFieldDecl(f))
	}
	out.pop()
	out.writeilf("} %s;", procArgStructName(p))
}

func argPtr(p Procedure) string {
	if len(p.ArgTypes) == 0 {
		return "void"
	}
	return cArgType(p)
}

func resPtr(p Procedure) string {
	if _, ok := p.ResultType.(*VoidType); ok {
		return "void"
	}
	return cResultType(p)
}

// emitProcedureXDR renders the xdr_<argname>/xdr_<resname> wrapper
// functions a procedure's rpc_procinfo/svc_procedure entries call —
// only needed when the argument/result type is neither void nor a
// named type (a named type's xdr_ function already lives in the shared
// types source); a multi-argument list gets a wrapper for its bundling
// struct. It also renders the free_<resname> release routine every
// non-void procedure's svc_procedure entry points pc_release at, so the kernel RPC layer frees a procedure's
// result after the reply has gone out without the handler stub
// having to remember to do it.
func emitProcedureXDR(h *Handle, w *typeWalker, prog *ProgramDef, ver VersionDef) string {
	out := newOutputWriter()
	out.writeilf(`#include "procedures.h"`)
	out.blank()
	for _, p := range ver.Procedures {
		switch len(p.ArgTypes) {
		case 0:
			// void: nothing to wrap.
		case 1:
			if _, ok := p.ArgTypes[0].(*NamedType); !ok {
				emitScalarXDRWrapper(out, w, procArgName(p), p.ArgTypes[0])
				out.blank()
			}
		default:
			emitArgsStructXDRWrapper(out, w, procArgName(p), p)
			out.blank()
		}
		if _, ok := p.ResultType.(*NamedType); !ok {
			if _, isVoid := p.ResultType.(*VoidType); !isVoid {
				emitScalarXDRWrapper(out, w, procResultName(p), p.ResultType)
				out.blank()
			}
		}
		if _, isVoid := p.ResultType.(*VoidType); !isVoid {
			emitReleaseWrapper(out, w, releaseName(p), p.ResultType)
			out.blank()
		}
	}
	return out.String()
}

func emitScalarXDRWrapper(out *outputWriter, w *typeWalker, name string, t Type) {
	out.writeilf("bool_t")
	out.writeilf("xdr_%s(XDR *xdrs, %s *objp)", name, cTypeName(t))
	out.writeil("{")
	out.push()
	w.Encode(out, t, "(*objp)")
	out.writeil("return TRUE;")
	out.pop()
	out.writeil("}")
}

// emitArgsStructXDRWrapper renders the xdr_ function for a
// multi-argument procedure's bundled struct: each field is encoded in
// turn, giving identical wire bytes to encoding every argument back to
// back (a struct's XDR representation is just its fields
// concatenated).
func emitArgsStructXDRWrapper(out *outputWriter, w *typeWalker, name string, p Procedure) {
	out.writeilf("bool_t")
	out.writeilf("xdr_%s(XDR *xdrs, %s *objp)", name, procArgStructName(p))
	out.writeil("{")
	out.push()
	for _, f := range procArgFields(p) {
		w.Encode(out, f.Type, fmt.Sprintf("objp->%s", f.Name))
	}
	out.writeil("return TRUE;")
	out.pop()
	out.writeil("}")
}

func releaseName(p Procedure) string { return "free_" + strings.ToLower(p.Name) + "_res" }

// typeNeedsLoopVar reports whether Release's generated statements for
// t reference the conventional "i" loop index (a fixed-size array
// whose element owns dynamic memory), so the release wrapper only
// declares that local when it's actually used.
func typeNeedsLoopVar(h *Handle, t Type) bool {
	if arr, ok := t.(*ArrayType); ok {
		return usesDynamicMemory(h, arr.Elem)
	}
	return false
}

// emitReleaseWrapper renders a release routine shaped like an xdr_*
// function (bool_t, XDR * first argument) so it can be cast to
// kxdrproc_t and plugged into a svc_procedure's pc_release field
// alongside pc_encode/pc_decode, even though it never touches xdrs.
func emitReleaseWrapper(out *outputWriter, w *typeWalker, name string, t Type) {
	out.writeilf("bool_t")
	out.writeilf("%s(XDR *xdrs, %s *objp)", name, cTypeName(t))
	out.writeil("{")
	out.push()
	if typeNeedsLoopVar(w.h, t) {
		out.writeil("int i;")
		out.blank()
	}
	w.Release(out, t, "(*objp)")
	out.writeil("return TRUE;")
	out.pop()
	out.writeil("}")
}

func emitProcedureAPIHeader(prog *ProgramDef, ver VersionDef) string {
	return emitProceduresHeader(prog, ver, true)
}

// emitProcedureAPISource renders the synchronous client call wrapper
// for every procedure in ver, each a thin rpc_call_sync shim.
func emitProcedureAPISource(prog *ProgramDef, ver VersionDef) string {
	out := newOutputWriter()
	out.writeilf(`#include "procedures.h"`)
	out.blank()
	for _, p := range ver.Procedures {
		out.writeilf("int %s(struct rpc_clnt *clnt, %s *argp, %s *resp)",
			strings.ToLower(p.Name), argPtr(p), resPtr(p))
		out.writeil("{")
		out.push()
		out.writeil("struct rpc_message msg = {")
		out.push()
		out.writeilf(".rpc_proc = &%s_clnt_version.procs[%s],", ver.Name, strings.ToUpper(p.Name))
		out.writeil(".rpc_argp = argp,")
		out.writeil(".rpc_resp = resp,")
		out.pop()
		out.writeil("};")
		out.writeil("return rpc_call_sync(clnt, &msg, 0);")
		out.pop()
		out.writeil("}")
		out.blank()
	}
	return out.String()
}

// emitProcedureHandlers renders the server-side handler stub for
// every procedure in ver; a caller fills in the body between the
// generated argument/result plumbing.
func emitProcedureHandlers(prog *ProgramDef, ver VersionDef) string {
	out := newOutputWriter()
	out.writeilf(`#include "procedures.h"`)
	out.blank()
	for _, p := range ver.Procedures {
		out.writeilf("void %s_svc(%s *argp, %s *resp, struct svc_rqst *rqstp)",
			strings.ToLower(p.Name), argPtr(p), resPtr(p))
		out.writeil("{")
		out.push()
		out.writeilf("/* TODO: implement %s */", p.Name)
		out.pop()
		out.writeil("}")
		out.blank()
	}
	return out.String()
}
