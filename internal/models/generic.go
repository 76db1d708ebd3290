package models

// GenericParameter represents a single type parameter of a declaration. The
// constraint clause is canonicalized during extraction (built-in markers
// first, approximation terms next, explicit bounds in declaration order,
// the construction-capability marker last) so that formatting differences
// in source never produce distinct snapshots.
type GenericParameter struct {
	Name             string
	ConstraintClause string // empty when no constraint applies
}

// Equal reports structural equality of two generic parameters.
func (g GenericParameter) Equal(other GenericParameter) bool {
	return g == other
}

func genericParametersEqual(a, b []GenericParameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
