package krpcgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputWriter_IndentTracksPushPop(t *testing.T) {
	out := newOutputWriter()
	out.writeil("int main(void)")
	out.writeil("{")
	out.push()
	out.writeil("return 0;")
	out.pop()
	out.writeil("}")

	want := "int main(void)\n{\n\treturn 0;\n}\n"
	assert.Equal(t, want, out.String())
}

func TestOutputWriter_PopBelowZeroIsANoop(t *testing.T) {
	out := newOutputWriter()
	out.pop()
	out.pop()
	out.writeil("x;")
	assert.Equal(t, "x;\n", out.String())
}

func TestOutputWriter_BlankLineHasNoIndentation(t *testing.T) {
	out := newOutputWriter()
	out.push()
	out.blank()
	assert.Equal(t, "\n", out.String())
}

func TestOutputWriter_WriteilfFormats(t *testing.T) {
	out := newOutputWriter()
	out.writeilf("#define %s %d", "FOO", 42)
	assert.Equal(t, "#define FOO 42\n", out.String())
}
