package types

// --- Type Relations ---

// Equivalent is identity for primitives and classes, and structural for
// arrays and functions. Function equivalence is invariant: same arity and
// pairwise equivalent parameter and return types.
func Equivalent(t1, t2 Type) bool {
	if t1 == nil || t2 == nil {
		return t1 == t2
	}
	if t1 == t2 {
		return true
	}
	switch a := t1.(type) {
	case *ArrayType:
		b, ok := t2.(*ArrayType)
		return ok && Equivalent(a.BaseType, b.BaseType)
	case *FunctionType:
		b, ok := t2.(*FunctionType)
		if !ok || !Equivalent(a.ReturnType, b.ReturnType) || len(a.ParameterTypes) != len(b.ParameterTypes) {
			return false
		}
		for i, p := range a.ParameterTypes {
			if !Equivalent(p, b.ParameterTypes[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsAssignable reports whether a value of type source may be stored where
// target is expected.
//
//   - anything is assignable to any;
//   - equivalent types are assignable;
//   - any array is assignable to [any];
//   - a function is assignable to another of the same arity when its return
//     type is assignable to the target's (covariance) and every target
//     parameter type is assignable to its own (contravariance).
func IsAssignable(source, target Type) bool {
	if source == nil || target == nil {
		return false
	}
	if target == Any || Equivalent(source, target) {
		return true
	}

	switch s := source.(type) {
	case *ArrayType:
		t, ok := target.(*ArrayType)
		return ok && t.BaseType == Any
	case *FunctionType:
		t, ok := target.(*FunctionType)
		if !ok || len(s.ParameterTypes) != len(t.ParameterTypes) {
			return false
		}
		if !IsAssignable(s.ReturnType, t.ReturnType) {
			return false
		}
		for i, tp := range t.ParameterTypes {
			if !IsAssignable(tp, s.ParameterTypes[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsNumeric reports whether t is int or float.
func IsNumeric(t Type) bool {
	return t == Int || t == Float
}

// IsNumericOrString reports whether t is int, float or string.
func IsNumericOrString(t Type) bool {
	return IsNumeric(t) || t == String
}
