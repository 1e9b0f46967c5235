package ast

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Intrinsic tags a standard library operation whose lowering is built into
// the emitter. The checker folds calls to intrinsics into Effect, Unary and
// Binary nodes carrying the tag.
type Intrinsic int

const (
	NotIntrinsic Intrinsic = iota
	Echo
	Sqrt
	Sin
	Cos
	Exp
	Ln
	Hypot
	Push
	Pop
	Length
	RandomInt
	ToString
	ToInt
	ToFloat
	ReadFile
	WriteFile
	Input
)

var intrinsicNames = [...]string{
	NotIntrinsic: "",
	Echo:         "echo",
	Sqrt:         "sqrt",
	Sin:          "sin",
	Cos:          "cos",
	Exp:          "exp",
	Ln:           "ln",
	Hypot:        "hypot",
	Push:         "push",
	Pop:          "pop",
	Length:       "length",
	RandomInt:    "randomInt",
	ToString:     "toString",
	ToInt:        "toInt",
	ToFloat:      "toFloat",
	ReadFile:     "readFile",
	WriteFile:    "writeFile",
	Input:        "input",
}

// String is the source-level name of the intrinsic.
func (i Intrinsic) String() string {
	if i < 0 || int(i) >= len(intrinsicNames) {
		return "intrinsic(?)"
	}
	return intrinsicNames[i]
}

// EffectName is the node name an effect is shown under, e.g. "Echo".
func (i Intrinsic) EffectName() string {
	return cases.Title(language.Und, cases.NoLower).String(i.String())
}

// UsesFileSystem reports whether the lowering needs the host's fs module.
func (i Intrinsic) UsesFileSystem() bool {
	return i == ReadFile || i == WriteFile || i == Input
}

// Intrinsics lists every tag in declaration order.
func Intrinsics() []Intrinsic {
	out := make([]Intrinsic, 0, len(intrinsicNames)-1)
	for i := Echo; int(i) < len(intrinsicNames); i++ {
		out = append(out, i)
	}
	return out
}
