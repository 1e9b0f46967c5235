package emitter

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"questc/pkg/ast"
	"questc/pkg/checker"
	"questc/pkg/optimizer"
	"questc/pkg/parser"
	"questc/pkg/source"
)

type fixture struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Expected string `yaml:"expected"`
}

func loadFixtures(t *testing.T, path string) []fixture {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var fixtures []fixture
	require.NoError(t, yaml.Unmarshal(data, &fixtures))
	require.NotEmpty(t, fixtures)
	return fixtures
}

func analyze(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, errs := parser.Parse(source.NewSourceFile("test.qst", "test.qst", input))
	require.Empty(t, errs)
	typed, semErrs := checker.Check(program)
	require.Empty(t, semErrs)
	return optimizer.Optimize(typed)
}

// dedent drops the leading whitespace of every line.
func dedent(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " \t")
	}
	return strings.Join(lines, "\n")
}

func TestGeneratorFixtures(t *testing.T) {
	for _, f := range loadFixtures(t, "testdata/generator.yaml") {
		t.Run(f.Name, func(t *testing.T) {
			e := New(WithLogger(zaptest.NewLogger(t)))
			actual := e.Emit(analyze(t, f.Source))
			assert.Equal(t, dedent(f.Expected), dedent(actual))
		})
	}
}

func TestIndentation(t *testing.T) {
	actual := Generate(analyze(t, `stat x = 0;
encounter (x == 0) { echo(1); } fallback encounter (x == 2) { echo(3); } fallback { echo(4); }`))
	expected := strings.Join([]string{
		"let x_1 = 0;",
		"if ((x_1 === 0)) {",
		"  console.log(1);",
		"} else",
		"  if ((x_1 === 2)) {",
		"    console.log(3);",
		"  } else {",
		"    console.log(4);",
		"  }",
	}, "\n")
	assert.Equal(t, expected, actual)
}

func TestRoundTripOfTrivialProgram(t *testing.T) {
	assert.Equal(t, "let x_1 = (Math.PI + 2.2);", Generate(analyze(t, "stat x = π + 2.2;")))
}

func TestEmitIsIdempotent(t *testing.T) {
	program := analyze(t, `class P { x: int; skill get(): int { reward this.x; } }
stat p = P(1);
stat s = input("? ");
repeat(2) { echo(p.get()); }`)
	e := New()
	first := e.Emit(program)
	assert.Equal(t, first, e.Emit(program))
	assert.Equal(t, first, New().Emit(program))
}

func TestFileSystemImportAppearsOnce(t *testing.T) {
	actual := Generate(analyze(t, `stat a = readFile("a");
stat b = readFile("b");
writeFile("c", a + b);`))
	assert.Equal(t, 1, strings.Count(actual, fsImport))
	assert.True(t, strings.HasPrefix(actual, fsImport+"\n"))

	assert.NotContains(t, Generate(analyze(t, `echo("no files");`)), fsImport)
}

func TestInputBuffersAreDistinct(t *testing.T) {
	actual := Generate(analyze(t, `stat a = input("a? ");
stat b = input("b? ");`))
	assert.Contains(t, actual, "const buffer_2 = Buffer.alloc(1024);")
	assert.Contains(t, actual, "const buffer_5 = Buffer.alloc(1024);")
	assert.NotContains(t, actual, ";;")
}

func TestVoidCallInsideExpression(t *testing.T) {
	actual := Generate(analyze(t, "skill f() {} echo(f());"))
	assert.Equal(t, "function f_1() {\n}\nf_1();\nconsole.log(undefined);", actual)
}

func TestJSLiterals(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{0.5, "0.5"},
		{2.2, "2.2"},
		{100, "100"},
		{1e21, "1e+21"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-9, "1.5e-9"},
		{1.2345e100, "1.2345e+100"},
		{-1e21, "-1e+21"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, jsNumber(tt.value))
	}

	assert.Equal(t, `"say \"hi\"\n"`, jsString("say \"hi\"\n"))
	assert.Equal(t, `"<b>&</b>"`, jsString("<b>&</b>"))
}
