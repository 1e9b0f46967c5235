package checker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"questc/pkg/ast"
	"questc/pkg/builtins"
	"questc/pkg/lexer"
	"questc/pkg/parser"
	"questc/pkg/source"
	"questc/pkg/types"
)

func analyze(t *testing.T, input string) (*ast.Program, error) {
	t.Helper()
	program, errs := parser.Parse(source.NewSourceFile("test.qst", "test.qst", input))
	require.Empty(t, errs, "syntax errors in %q", input)
	result, semErrs := NewChecker(WithLogger(zaptest.NewLogger(t))).Check(program)
	if len(semErrs) > 0 {
		require.Len(t, semErrs, 1)
		assert.Nil(t, result)
		return nil, semErrs[0]
	}
	return result, nil
}

func TestSemanticChecks(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"variable declarations", `const x = 1; stat y = "false";`},
		{"increment and decrement", "stat x = 10; x--; x++;"},
		{"initialize with empty array", "stat a = [int]();"},
		{"assign arrays", "stat a = [int]();stat b=[1];a=b;b=a;"},
		{"assign to array element", "stat a = [1,2,3]; a[1]=100;"},
		{"short return", "skill f() { reward; }"},
		{"long return", "skill f(): boolean { reward true; }"},
		{"return in nested if", "skill f() {encounter(true) {reward;}}"},
		{"break in nested if", "quest(false) {encounter(true) {break;}}"},
		{"long if", "encounter(true) {echo(1);} fallback {echo(3);}"},
		{"elsif", "encounter(true) {echo(1);} fallback encounter(true) {echo(0);} fallback {echo(3);}"},
		{"for over collection", "for(i in [2,3,5]) {echo(1);}"},
		{"for in range", "for(i in 1..<10) {echo(0);}"},
		{"repeat", "repeat(3) {stat a = 1; echo(a);}"},
		{"conditionals with ints", "echo(true ? 8 : 5);"},
		{"conditionals with floats", "echo(1<2 ? 8.0 : -5.22);"},
		{"conditionals with strings", `echo(1<2 ? "x" : "y");`},
		{"||", "echo(true||1<2||false||!true);"},
		{"&&", "echo(true&&1<2&&false&&!true);"},
		{"relations", `echo(1<=2 && "x">"y" && 3.5<1.2);`},
		{"ok to == arrays", "echo([1]==[5,8]);"},
		{"ok to != arrays", "echo([1]!=[5,8]);"},
		{"arithmetic", "stat x=1;echo(2*3+5**-3/2-5%8);"},
		{"array length", "echo(length([1,2,3]));"},
		{"variables", "stat x=[[[[1]]]]; echo(x[0][0][0][0]+2);"},
		{"subscript exp", "stat a=[1,2];echo(a[0]);"},
		{"assigned skills", "skill f() {}\nstat g = f;g = f;"},
		{"call of assigned skills", "skill f(x: int) {}\nstat g=f;g(1);"},
		{"type equivalence of nested arrays", "skill f(x: [[int]]) {} echo(f([[1],[2]]));"},
		{"call of assigned skill in expression", `skill f(x: int, y: boolean): int {}
			stat g = f;
			echo(g(1, true));`},
		{"pass a skill to a skill", `skill f(x: int, y: (boolean): void): int { reward 1; }
			skill g(z: boolean) {}
			f(2, g);`},
		{"skill return types", "skill square(x: int): int { reward x * x; }"},
		{"skill assign", "skill f() {} stat g = f; stat h = [g, f]; echo(h[0]());"},
		{"covariant return types", `skill f(): any { reward 1; }
			skill g(): float { reward 1.0; }
			stat h = f; h = g;`},
		{"contravariant parameter types", `skill f(x: float) {  }
			skill g(x: any) {  }
			stat h = f; h = g;`},
		{"array parameters", "skill f(x: [int]) {}"},
		{"types in skill type", "skill f(g: (int, float): string) {}"},
		{"voids in fn type", "skill f(g: (void): void) {}"},
		{"outer variable", "stat x=1; quest(false) {echo(x);}"},
		{"built-in constants", "echo(25.0 * π);"},
		{"built-in sqrt", "echo(sqrt(25.0));"},
		{"built-in sin", "echo(sin(π));"},
		{"built-in cos", "echo(cos(93.999));"},
		{"built-in hypot", "echo(hypot(-4.0, 3.00001));"},
		{"multiline comments", "/* this is a comment */ stat x = 1;"},
		{"string concatenation with a number", `echo("n = " + 3);`},
		{"spread of an array", "stat a = [1]; stat b = [...a];"},
		{"shadowing inside a function", "stat x = 1; skill f() { stat x = true; echo(x); }"},
		{"shadowing a builtin inside a function", "skill f() { stat echo = 1; }"},
		{"recursion", "skill fact(n: int): int { reward n <= 1 ? 1 : n * fact(n - 1); }"},
		{"class with methods", `class Counter {
			count: int;
			skill get(): int { reward this.count; }
			skill twice(): int { reward get() * 2; }
		}
		const c = Counter(3);
		echo(c.get() + c.twice());`},
		{"mutable member through a mutable variable", "class P { x: int; } stat p = P(1); p.x = 2; p.x++;"},
		{"intrinsics for collections and files", `stat a = [1]; push(a, 2); echo(pop(a));
			stat ok = writeFile("out.txt", readFile("in.txt"));
			stat name = input("name? ");
			echo(toString(randomInt(1, 6)) + toFloat(3));`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := analyze(t, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
		})
	}
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"non-int increment", "stat x=false;x++;", "an integer"},
		{"assign to const", "const x = 1;x = 2;", "Cannot assign to immutable x"},
		{"assign to skill", "skill f() {} skill g() {} f = g;", "Cannot assign to immutable f"},
		{"assign to const array element", "const a = [1];a[0] = 2;", "Cannot assign to immutable a"},
		{"assign bad type", "stat x=1;x=true;", "Line 1, col 10: Cannot assign a boolean to a int"},
		{"assign bad array type", "stat x=1;x=[true];", "Cannot assign a [boolean] to a int"},
		{"break outside loop", "break;", "Line 1, col 1: Break can only appear in a loop"},
		{"break inside skill", "quest(true) {skill f() {break;}}", "Break can only appear in a loop"},
		{"return value from void skill", "skill f() {reward 1;}", "Cannot return a value"},
		{"return nothing from non-void", "skill f(): int {reward;}", "should be returned"},
		{"return type mismatch", "skill f(): int {reward false;}", "boolean to a int"},
		{"return outside a skill", "reward;", "Return can only appear in a function"},
		{"non-boolean short if test", "encounter(1) {}", "Expected a boolean"},
		{"non-boolean if test", "encounter(1) {} fallback {}", "Expected a boolean"},
		{"non-boolean quest test", "quest(1) {}", "Expected a boolean"},
		{"non-integer repeat", `repeat("1") {}`, "Expected an integer"},
		{"non-integer low range", "for(i in true...2) {}", "Expected an integer"},
		{"non-array in for", "for(i in 100) {}", "Expected an array"},
		{"non-boolean conditional test", "echo(1?2:3);", "Expected a boolean"},
		{"diff types in conditional arms", "echo(true?1:true);", "Line 1, col 12: Operands do not have the same type"},
		{"bad types for ||", "echo(false||1);", "Expected a boolean"},
		{"bad types for &&", "echo(false&&1);", "Expected a boolean"},
		{"bad types for ==", "echo(false==1);", "Operands do not have the same type"},
		{"bad types for !=", "echo(false!=1);", "not have the same type"},
		{"bad types for +", "echo(false+1);", "Line 1, col 6: Expected a number or string"},
		{"bad types for -", "echo(false-1);", "Expected a number"},
		{"bad types for *", "echo(false*1);", "Expected a number"},
		{"bad types for /", "echo(false/1);", "Expected a number"},
		{"bad types for **", "echo(false**1);", "Expected a number"},
		{"bad types for <", "echo(false<1);", "Expected a number or string"},
		{"bad types for <=", "echo(false<=1);", "Expected a number or string"},
		{"bad types for >", "echo(false>1);", "Expected a number or string"},
		{"bad types for >=", "echo(false>=1);", "Expected a number or string"},
		{"int compared with float", "echo(2==2.0);", "not have the same type"},
		{"bad types for negation", "echo(-true);", "Expected a number"},
		{"bad types for not", `echo(!"hello");`, "Expected a boolean"},
		{"non-integer index", "stat a=[1];echo(a[false]);", "Expected an integer"},
		{"diff type array elements", "echo([3,3.0]);", "Not all elements have the same type"},
		{"too many args", "skill f(x: int) {}\nf(1,2);", "Line 2, col 2: 1 argument(s) required but 2 passed"},
		{"too few args", "skill f(x: int) {}\nf();", "1 argument(s) required but 0 passed"},
		{"parameter type mismatch", "skill f(x: int) {}\nf(false);", "Cannot assign a boolean to a int"},
		{"skill type mismatch", `skill f(x: int, y: (boolean): void): int { reward 1; }
			skill g(z: boolean): int { reward 5; }
			f(2, g);`, "Cannot assign a (boolean)->int to a (boolean)->void"},
		{"bad param type in fn assign", "skill f(x: int) {} skill g(y: float) {} f = g;", "Cannot assign to immutable f"},
		{"bad return type in fn assign", `skill f(x: int): int {reward 1;}
			skill g(y: int): string {reward "uh-oh";}
			stat h = f; h = g;`, "Cannot assign a (int)->string to a (int)->int"},
		{"type error call to sin()", "echo(sin(true));", "Cannot assign a boolean to a float"},
		{"type error call to sqrt()", "echo(sqrt(true));", "Cannot assign a boolean to a float"},
		{"type error call to cos()", "echo(cos(true));", "Cannot assign a boolean to a float"},
		{"type error call to hypot()", `echo(hypot("dog", 3.3));`, "Cannot assign a string to a float"},
		{"too many arguments to hypot()", "echo(hypot(1, 2, 3));", "2 argument(s) required but 3 passed"},
		{"non-type in param", "stat x=1;skill f(y:x){}", "Type expected"},
		{"non-type in return type", "stat x=1;skill f():x{reward 1;}", "Type expected"},
		{"assign to immutable member", `
			class Point {
				x: int;
				y: int;
			}
			const p = Point(10, 20);
			p.x = 30;`, "Cannot assign to immutable p"},
		{"nested class types", `
			class Inner { x: int; }
			class Middle { inner: Inner; }
			class Outer { middle: Middle; outer: Outer; }`, "Class type must not be self-containing"},
		{"redeclared variable", "stat x = 1; const x = 2;", "Identifier 'x' already declared"},
		{"redeclared builtin at top level", "stat echo = 1;", "Identifier 'echo' already declared"},
		{"undeclared variable", "echo(y);", "Line 1, col 6: Identifier 'y' not declared"},
		{"duplicate parameter", "skill f(x: int, x: int) {}", "Parameter 'x' already declared"},
		{"duplicate fields", "class P { x: int; x: float; }", "Fields must be distinct"},
		{"no such field", "class P { x: int; } const p = P(1); echo(p.y);", "Line 1, col 44: No such field"},
		{"member of a non-class", "stat a = 1; echo(a.x);", "Expected a class"},
		{"call of a non-function", "stat x = 1; x(2);", "Call of non-function or non-constructor"},
		{"call of a primitive type", "echo(int(2));", "Call of non-function or non-constructor"},
		{"type used as a value", "stat x = int;", "Type int cannot be used as a value"},
		{"this outside a skill", "echo(this);", "Return can only appear in a function"},
		{"this outside a class", "skill f() { echo(this.x); }", "Expected a class"},
		{"this in a skill nested in a method", "class C { x: int; skill m() { skill inner(): int { reward this.x; } } }", "Expected a class"},
		{"method named in a nested skill", "class C { skill m() {} skill n() { skill inner() { m(); } } }", "Line 1, col 52: Method m can only be used inside its class"},
		{"nested class", "class A { skill m() { class B { y: int; } } }", "Classes cannot be nested"},
		{"assigning to a loop iterator", "for (i in 1...3) { i = 2; }", "Cannot assign to immutable i"},
		{"constructor argument count excludes methods", "class P { x: int; skill m() {} } const p = P(1, 2);", "1 argument(s) required but 2 passed"},
		{"spread of a non-array", "stat a = [...3];", "Expected an array"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPrimitiveTypesAreSpelledByName(t *testing.T) {
	c := NewChecker()
	at := lexer.Token{Line: 1, Column: 3}

	assert.Equal(t, types.Int, c.mustBeAType("int", types.Int, at))
	assert.Equal(t, types.Boolean, c.mustBeAType("boolean", types.Boolean, at))
	for _, spelled := range []string{"integer", "float", "Int"} {
		assert.Panics(t, func() { c.mustBeAType(spelled, types.Int, at) }, spelled)
	}
	assert.Panics(t, func() { c.mustBeAType("x", &ast.Variable{Name: "x", Typ: types.Int}, at) })
}

func TestNestedSkillInMethod(t *testing.T) {
	_, err := analyze(t, `class C {
		x: int;
		skill m(): int {
			skill twice(n: int): int { reward n * 2; }
			reward twice(this.x);
		}
	}`)
	require.NoError(t, err)
}

func TestTrivialProgramRepresentation(t *testing.T) {
	result, err := analyze(t, "stat x = π + 2.2;")
	require.NoError(t, err)

	want := &ast.Program{Statements: []ast.Statement{
		&ast.VariableDeclaration{
			Variable: &ast.Variable{Name: "x", Mutable: true, Typ: types.Float},
			Initializer: &ast.BinaryExpression{
				Op:    "+",
				Left:  builtins.Pi,
				Right: &ast.FloatLiteral{Value: 2.2},
				Typ:   types.Float,
			},
		},
	}}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("typed AST mismatch (-want +got):\n%s", diff)
	}
}

func TestIntrinsicFolding(t *testing.T) {
	result, err := analyze(t, `echo(1); echo(sqrt(2.0)); echo(hypot(3.0, 4.0));`)
	require.NoError(t, err)
	require.Len(t, result.Statements, 3)

	echo, ok := result.Statements[0].(*ast.CallStatement).Call.(*ast.Effect)
	require.True(t, ok)
	assert.Equal(t, ast.Echo, echo.Intrinsic)

	sqrt := result.Statements[1].(*ast.CallStatement).Call.(*ast.Effect).Args[0].(*ast.UnaryExpression)
	assert.Equal(t, "sqrt", sqrt.Op)
	assert.Equal(t, ast.Sqrt, sqrt.Intrinsic)
	assert.Equal(t, types.Float, sqrt.Type())

	hypot := result.Statements[2].(*ast.CallStatement).Call.(*ast.Effect).Args[0].(*ast.BinaryExpression)
	assert.Equal(t, "hypot", hypot.Op)
	assert.Equal(t, ast.Hypot, hypot.Intrinsic)
}

func TestClassBuilding(t *testing.T) {
	result, err := analyze(t, `class S {
		x: int;
		skill get(): int { reward this.x; }
		skill again(): int { reward get(); }
	}
	const s = S(1);`)
	require.NoError(t, err)

	decl := result.Statements[0].(*ast.TypeDeclaration)
	require.Len(t, decl.Class.Fields, 3)
	assert.Equal(t, []string{"x"}, fieldNames(decl.Class.DataFields()))
	assert.Equal(t, 2, decl.Class.MethodCount())

	get := decl.Class.Fields[1].Method.(*ast.FunctionDeclaration)
	ret := get.Fun.Body[0].(*ast.ReturnStatement).Expression.(*ast.MemberExpression)
	assert.True(t, ret.OnReceiver())
	assert.Same(t, decl.Class.Fields[1], get.Fun.MethodField())

	again := decl.Class.Fields[2].Method.(*ast.FunctionDeclaration)
	call := again.Fun.Body[0].(*ast.ReturnStatement).Expression.(*ast.FunctionCall)
	assert.Same(t, get.Fun, call.Callee)

	ctor := result.Statements[1].(*ast.VariableDeclaration).Initializer.(*ast.ConstructorCall)
	assert.Same(t, decl.Class, ctor.Class)
}

func TestIfChainShapes(t *testing.T) {
	result, err := analyze(t, "encounter (true) {} fallback encounter (false) {}")
	require.NoError(t, err)
	ifStmt := result.Statements[0].(*ast.IfStatement)
	assert.IsType(t, &ast.ShortIfStatement{}, ifStmt.Alternate)
}

func TestCheckerIsReusable(t *testing.T) {
	c := NewChecker()
	parse := func(input string) *parser.Program {
		p, errs := parser.Parse(source.NewSourceFile("t.qst", "t.qst", input))
		require.Empty(t, errs)
		return p
	}

	_, errs := c.Check(parse("stat x = 1; x = true;"))
	require.Len(t, errs, 1)

	// A failed run leaves no bindings behind.
	result, errs := c.Check(parse("stat x = 1;"))
	require.Empty(t, errs)
	require.Len(t, result.Statements, 1)
}

func fieldNames(fields []*types.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
