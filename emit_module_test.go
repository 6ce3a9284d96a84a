package krpcgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pingSpec = `
program PING_PROG {
	version PING_VERS_PINGBACK {
		void PINGPROC_NULL(void) = 0;
		int PINGPROC_PINGBACK(void) = 1;
	} = 2;
	version PING_VERS_ORIG {
		void PINGPROC_NULL(void) = 0;
	} = 1;
} = 200000;
const PING_VERS = 2;
`

func mustHandle(t *testing.T, src string) *Handle {
	t.Helper()
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	h, err := NewHandle(mod)
	require.NoError(t, err)
	return h
}

func TestEmitModule_WritesExpectedFileTree(t *testing.T) {
	h := mustHandle(t, pingSpec)
	dir := t.TempDir()
	opts := NewGeneratorOptions()
	opts.OutputPath = dir

	require.NoError(t, EmitModule(h, opts))

	expected := []string{
		"constants.h",
		"types.h",
		"types_xdr.c",
		"Makefile",
		"clients/client.h",
		"clients/client.c",
		"servers/common.h",
		"servers/common.c",
		"clients/PING_PROG/constants.h",
		"clients/PING_PROG/authentication.h",
		"clients/PING_PROG/authentication.c",
		"clients/PING_PROG/program.c",
		"clients/PING_PROG/PING_VERS_PINGBACK/constants.h",
		"clients/PING_PROG/PING_VERS_PINGBACK/version.h",
		"clients/PING_PROG/PING_VERS_PINGBACK/version.c",
		"clients/PING_PROG/PING_VERS_PINGBACK/procedures.h",
		"clients/PING_PROG/PING_VERS_PINGBACK/procedure_xdr.c",
		"clients/PING_PROG/PING_VERS_PINGBACK/procedure_api.h",
		"clients/PING_PROG/PING_VERS_PINGBACK/procedure_api.c",
		"servers/PING_PROG/constants.h",
		"servers/PING_PROG/authentication.h",
		"servers/PING_PROG/authentication.c",
		"servers/PING_PROG/program.c",
		"servers/PING_PROG/PING_VERS_PINGBACK/constants.h",
		"servers/PING_PROG/PING_VERS_PINGBACK/version.h",
		"servers/PING_PROG/PING_VERS_PINGBACK/version.c",
		"servers/PING_PROG/PING_VERS_PINGBACK/procedures.h",
		"servers/PING_PROG/PING_VERS_PINGBACK/procedure_xdr.c",
		"servers/PING_PROG/PING_VERS_PINGBACK/procedure_handlers.c",
	}

	for _, rel := range expected {
		t.Run(rel, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(dir, rel))
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestEmitModule_ServerVersionSourceWiresReleaseForNonVoidResult(t *testing.T) {
	h := mustHandle(t, pingSpec)
	dir := t.TempDir()
	opts := NewGeneratorOptions()
	opts.OutputPath = dir
	require.NoError(t, EmitModule(h, opts))

	data, err := os.ReadFile(filepath.Join(dir, "servers/PING_PROG/PING_VERS_PINGBACK/version.c"))
	require.NoError(t, err)
	src := string(data)

	assert.Contains(t, src, ".pc_release = (kxdrproc_t)free_pingproc_pingback_res,",
		"the non-void PINGPROC_PINGBACK result must get a release wrapper wired into pc_release")
	assert.NotContains(t, src, "PINGPROC_NULL_res",
		"a void-result procedure must not get a release wrapper")
}

func TestEmitModule_ClientProcedureXDRDeclaresVoidViaLibraryFunction(t *testing.T) {
	h := mustHandle(t, pingSpec)
	dir := t.TempDir()
	opts := NewGeneratorOptions()
	opts.OutputPath = dir
	require.NoError(t, EmitModule(h, opts))

	data, err := os.ReadFile(filepath.Join(dir, "clients/PING_PROG/PING_VERS_ORIG/version.c"))
	require.NoError(t, err)
	src := string(data)

	assert.Contains(t, src, "(kxdrproc_t)xdr_void")
}

func TestEmitModule_TypesHeaderDeclaresEveryNamedType(t *testing.T) {
	h := mustHandle(t, `
typedef int meters_t;
struct Point { int x; int y; };
enum Color { RED, GREEN, BLUE };
union Shape switch (Color kind) {
case RED: Point circle;
default: int fallback;
};
`)
	out := EmitTypesHeader(h)
	assert.Contains(t, out, "meters_t")
	assert.Contains(t, out, "Point_t")
	assert.Contains(t, out, "Color_t")
	assert.Contains(t, out, "Shape_t")
}

func TestEmitXDRSource_UnionSwitchHasCatchAllDefault(t *testing.T) {
	h := mustHandle(t, `
enum Color { RED, GREEN, BLUE };
union Shape switch (Color kind) {
case RED: int circle;
case GREEN: int square;
};
`)
	opts := NewGeneratorOptions()
	out := EmitXDRSource(h, opts)
	assert.Contains(t, out, "xdr_Shape")
	assert.Contains(t, out, "case Color_RED:")
	assert.Contains(t, out, "case Color_GREEN:")
	assert.Contains(t, out, "default:")
}

func TestEmitMakefile_ListsGeneratedModules(t *testing.T) {
	h := mustHandle(t, pingSpec)
	out := emitMakefile(h)
	assert.Contains(t, out, "PING_PROG_client.o")
	assert.Contains(t, out, "PING_PROG_server.o")
	assert.Contains(t, out, "types_xdr.o")
}
