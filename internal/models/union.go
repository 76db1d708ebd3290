package models

// UnionMember is one variant of a union, in declaration order.
type UnionMember struct {
	Name       string
	Visibility Visibility
}

// UnionDefinition is the canonical summary of an annotated union
// declaration. Members enumerates, in declaration order, every package-level
// declaration whose declared supertype is exactly this union: structs whose
// first embedded field is the union (reference style), or defined types
// whose underlying type is the union (value style).
//
// A union with zero members is a valid snapshot; the structural diagnostic
// promotes it to a fixable defect.
type UnionDefinition struct {
	Name                    string
	Kind                    UnionKind
	Visibility              Visibility
	GroupName               string
	QualifiedTypeExpression string
	GenericParameters       []GenericParameter
	Settings                UnionSettings
	Members                 []UnionMember
	Span                    Span
}

// Equal reports deep, order-sensitive equality. The source span is identity
// metadata, not semantic content: moving a union without changing it must
// not invalidate the cached render.
func (u UnionDefinition) Equal(other UnionDefinition) bool {
	if u.Name != other.Name ||
		u.Kind != other.Kind ||
		u.Visibility != other.Visibility ||
		u.GroupName != other.GroupName ||
		u.QualifiedTypeExpression != other.QualifiedTypeExpression ||
		u.Settings != other.Settings {
		return false
	}
	if !genericParametersEqual(u.GenericParameters, other.GenericParameters) {
		return false
	}
	if len(u.Members) != len(other.Members) {
		return false
	}
	for i := range u.Members {
		if u.Members[i] != other.Members[i] {
			return false
		}
	}
	return true
}
