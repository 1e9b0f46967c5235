package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questc/pkg/source"
)

func parse(t *testing.T, input string) *Program {
	t.Helper()
	program, errs := Parse(source.NewSourceFile("test.qst", "test.qst", input))
	require.Empty(t, errs, "unexpected syntax errors for %q", input)
	require.NotNil(t, program)
	return program
}

func TestSyntaxChecks(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"simplest program", "break;"},
		{"multiple statements", "echo(1);\nbreak;\nx=5; reward; reward;"},
		{"variable declarations", "stat e=99*1;\nconst z=false;"},
		{"type declarations", "class S {x:T1; y:T2; z:Bool;}"},
		{"function with no params, no reward type", "skill f() {}"},
		{"function with one param", "skill f(x: Int) {}"},
		{"function with two params", "skill f(x: Int, y: Bool) {}"},
		{"function with no params and reward type", "skill f(): Int {}"},
		{"function types in params", "skill f(g: (Int): Bool) {}"},
		{"function types rewarded", "skill f(): (Int): (Int): Void {}"},
		{"array type for param", "skill f(x: [[[Bool]]]) {}"},
		{"array type rewarded", "skill f(): [[Int]] {}"},
		{"assignments", "a--; c++; abc=9*3; a=1;"},
		{"complex assignment targets", "c(5)[2] = 100;c.p.r=1;c.q(8)[2](1,1).z=1;"},
		{"complex bump targets", "c(5)[2]++;c.p.r++;c.q(8)[2](1,1).z--;"},
		{"call in statement", "stat x = 1;\nf(100);\necho(1);"},
		{"call in expression", "echo(5 * f(x, y, 2 * y));"},
		{"short if", "encounter (true) { echo(1); }"},
		{"longer if", "encounter (true) { echo(1); } fallback { echo(1); }"},
		{"even longer if", "encounter (true) { echo(1); } fallback encounter (false) { echo(1);}"},
		{"quest loop", "quest (true) {}"},
		{"quest with one statement block", "quest (true) { stat x = 1; }"},
		{"repeat with long block", "repeat (2) { echo(1);\necho(2);echo(3); }"},
		{"if inside loop", "repeat (3) { encounter (true) { echo(1); } }"},
		{"for closed range", "for (i in 2...9*1) {}"},
		{"for half-open range", "for (i in 2..<9*1) {}"},
		{"for collection as identifier", "for (i in things) {}"},
		{"for collection as literal", "for (i in [3,5,8]) {}"},
		{"conditional", "reward x?y:z?y:p;"},
		{"ors can be chained", "echo(1 || 2 || 3 || 4 || 5);"},
		{"ands can be chained", "echo(1 && 2 && 3 && 4 && 5);"},
		{"relational operators", "echo(1<2||1<=2||1==2||1!=2||1>=2||1>2);"},
		{"arithmetic", "reward 2 * x + 3 / 5 - -1 % 7 ** 3 ** 3;"},
		{"length", "reward length(c); reward length([1,2,3]);"},
		{"boolean literals", "stat x = false || true;"},
		{"all numeric literal forms", "echo(8 * 89.123 * 1.3E5 * 1.3E+5 * 1.3E-5);"},
		{"empty array literal", "echo([Int]());"},
		{"nonempty array literal", "echo([1, 2, 3]);"},
		{"parentheses", "echo(83 * ((((((((-(13 / 21))))))))) + 1 - 0);"},
		{"indexing array literals", "echo([1,2,3][1]);"},
		{"non-Latin letters in identifiers", "stat コンパイラ = 100;"},
		{"a simple string literal", `echo("hello😉😬💀🙅🏽‍♀️—");`},
		{"end of program inside comment", "echo(0); // yay"},
		{"comments with no text", "echo(1);//\necho(0);//"},
		{"grouped mixed logic", "echo((1 && 2) || 3);"},
		{"grouped negation before exponentiation", "echo((-2)**2);"},
		{"grouped literal can be called", "echo((500)(x));"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parse(t, tt.input)
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		locator string
	}{
		{"non-letter in an identifier", "stat ab😭c = 2;", "Line 1, col 8:"},
		{"malformed number", "stat x= 2.;", "Line 1, col 11:"},
		{"a float with an E but no exponent", "stat x = 5E * 11;", "Line 1, col 11:"},
		{"a missing right operand", "echo(5 -);", "Line 1, col 9:"},
		{"a non-operator", "echo(7 * ((2 _ 3));", "Line 1, col 14:"},
		{"an expression starting with a )", "reward );", "Line 1, col 8:"},
		{"a statement starting with expression", "x * 5;", "Line 1, col 3:"},
		{"an illegal statement on line 2", "echo(5);\nx * 5;", "Line 2, col 3:"},
		{"a statement starting with a )", "echo(5);\n)", "Line 2, col 1:"},
		{"an expression starting with a *", "stat x = * 71;", "Line 1, col 10:"},
		{"negation before exponentiation", "echo(-2**2);", "Line 1, col 8:"},
		{"mixing ands and ors", "echo(1 && 2 || 3);", "Line 1, col 13:"},
		{"mixing ors and ands", "echo(1 || 2 && 3);", "Line 1, col 13:"},
		{"associating relational operators", "echo(1 < 2 < 3);", "Line 1, col 12:"},
		{"quest without braces", "quest (true)\necho(1);", "Line 2, col 1:"},
		{"if without braces", "encounter (x < 3)\necho(1);", "Line 2, col 1:"},
		{"for as identifier", "stat for = 3;", "Line 1, col 6:"},
		{"if as identifier", "stat encounter = 8;", "Line 1, col 6:"},
		{"unbalanced brackets", "skill f(): Int[;", "Line 1, col 15:"},
		{"empty array without type", "echo([]);", "Line 1, col 7:"},
		{"bad array literal", "echo([1,2,]);", "Line 1, col 11:"},
		{"empty subscript", "echo(a[]);", "Line 1, col 8:"},
		{"true is not assignable", "true = 1;", "Line 1, col 6:"},
		{"false is not assignable", "false = 1;", "Line 1, col 7:"},
		{"numbers cannot be subscripted", "echo(500[x]);", "Line 1, col 9:"},
		{"numbers cannot be called", "echo(500(x));", "Line 1, col 9:"},
		{"numbers cannot be dereferenced", "echo(500.x);", "Line 1, col 10:"},
		{"no-paren function type", "skill f(g:Int->Int) {}", "Line 1, col 14:"},
		{"string literal with unknown escape", `echo("ab\zcdef");`, "Line 1, col 10:"},
		{"string literal with newline", "echo(\"ab\ncdef\");", "Line 1, col 9:"},
		{"string literal with unescaped quote", `echo("ab"cdef");`, "Line 1, col 10:"},
		{"call result is not assignable", "f() = 1;", "Line 1, col 5:"},
		{"bare expression is not a statement", "x;", "Line 1, col 2:"},
		{"unterminated block", "quest (true) { echo(1);", "Line 1, col 24:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, errs := Parse(source.NewSourceFile("test.qst", "test.qst", tt.input))
			assert.Nil(t, program)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Error(), tt.locator)
			assert.Equal(t, "Syntax", errs[0].Kind())
		})
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"reward 1 + 2 * 3;", "reward (1 + (2 * 3));"},
		{"reward 1 - 2 - 3;", "reward ((1 - 2) - 3);"},
		{"reward 2 ** 3 ** 2;", "reward (2 ** (3 ** 2));"},
		{"reward 5 ** -x;", "reward (5 ** (-x));"},
		{"reward -a[0];", "reward (-(a[0]));"},
		{"reward !a.b(c);", "reward (!(a.b)(c));"},
		{"reward a || b || c;", "reward ((a || b) || c);"},
		{"reward a < b + 1 && c;", "reward ((a < (b + 1)) && c);"},
		{"reward a ? b : c ? d : e;", "reward (a ? b : (c ? d : e));"},
		{"reward x || y ? 1 : 2;", "reward ((x || y) ? 1 : 2);"},
		{"reward [1, 2][0] * 3;", "reward (([1, 2][0]) * 3);"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parse(t, tt.input)
			require.Len(t, program.Statements, 1)
			assert.Equal(t, tt.expected, program.Statements[0].String())
		})
	}
}

func TestStatementShapes(t *testing.T) {
	program := parse(t, `
stat x = 1;
const y = "s";
x++;
x--;
a.b[0] = 3;
echo(x);
encounter (x > 0) { break; } fallback encounter (x < 0) { reward; } fallback { reward 1; }
for (i in 1..<10) {}
for (j in 1...10) {}
for (k in ks) {}
class P { x: Int; skill m(): Int { reward this.x; } }
`)
	require.Len(t, program.Statements, 11)

	decl, ok := program.Statements[0].(*VariableDeclaration)
	require.True(t, ok)
	assert.True(t, decl.Mutable())
	assert.Equal(t, "x", decl.Name.Value)

	constDecl := program.Statements[1].(*VariableDeclaration)
	assert.False(t, constDecl.Mutable())
	assert.Equal(t, "s", constDecl.Value.(*StringLiteral).Value)

	assert.True(t, program.Statements[2].(*BumpStatement).IsIncrement())
	assert.False(t, program.Statements[3].(*BumpStatement).IsIncrement())

	assign := program.Statements[4].(*AssignStatement)
	assert.IsType(t, &IndexExpression{}, assign.Target)

	call := program.Statements[5].(*CallStatement)
	assert.Equal(t, "echo", call.Call.Function.(*Identifier).Value)

	ifStmt := program.Statements[6].(*IfStatement)
	elseIf, ok := ifStmt.Alternative.(*IfStatement)
	require.True(t, ok)
	assert.Nil(t, elseIf.Consequence.Statements[0].(*ReturnStatement).Value)
	assert.IsType(t, &BlockStatement{}, elseIf.Alternative)

	exclusive := program.Statements[7].(*ForRangeStatement)
	assert.Equal(t, "..<", exclusive.Operator.Literal)
	inclusive := program.Statements[8].(*ForRangeStatement)
	assert.Equal(t, "...", inclusive.Operator.Literal)
	forIn := program.Statements[9].(*ForInStatement)
	assert.Equal(t, "ks", forIn.Collection.String())

	class := program.Statements[10].(*ClassDeclaration)
	require.Len(t, class.Members, 2)
	assert.IsType(t, &FieldDeclaration{}, class.Members[0])
	method := class.Members[1].(*FunctionDeclaration)
	assert.Equal(t, "Int", method.ReturnType.String())
}

func TestEmptyArrayAndTypes(t *testing.T) {
	program := parse(t, "echo([[Int]]()); skill f(g: (Int, [Bool]): Void): [Int] {}")

	call := program.Statements[0].(*CallStatement).Call
	empty, ok := call.Arguments[0].(*EmptyArrayExpression)
	require.True(t, ok)
	assert.Equal(t, "[[Int]]", empty.Type.String())

	fn := program.Statements[1].(*FunctionDeclaration)
	require.Len(t, fn.Parameters, 1)
	fnType, ok := fn.Parameters[0].Type.(*FunctionTypeExpression)
	require.True(t, ok)
	assert.Equal(t, "(Int, [Bool]): Void", fnType.String())
	assert.Equal(t, "[Int]", fn.ReturnType.String())
}

func TestPositions(t *testing.T) {
	program := parse(t, "stat x = 1;\n  echo(x + 2);")
	call := program.Statements[1].(*CallStatement).Call
	assert.Equal(t, 2, call.Pos().Line)
	assert.Equal(t, 3, call.Pos().Column)
	assert.Equal(t, 7, call.Token.Column)
	plus := call.Arguments[0].(*InfixExpression)
	assert.Equal(t, 10, plus.Token.Column)
}
