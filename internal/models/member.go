package models

// Param is a single parameter of a matched member.
type Param struct {
	Name           string
	TypeExpression string
}

// ReturnShape describes a member's return type after async unwrapping.
// WrapsAsyncResult is true exactly when the declared return type is the
// well-known task wrapper instantiated with one type argument; in that case
// UnderlyingTypeExpression is the inner type argument, otherwise the return
// type verbatim (empty for no return value).
type ReturnShape struct {
	UnderlyingTypeExpression string
	WrapsAsyncResult         bool
}

// MemberInfo is the canonical summary of one matched member of a container.
type MemberInfo struct {
	Name              string
	Container         ContainerInfo
	Parameters        []Param // excludes the receiver / container-typed first parameter
	GenericParameters []GenericParameter
	ReturnShape       ReturnShape
	Kind              MemberKind
	ReceiverType      string // receiver or first-parameter type as declared, e.g. "*Widget"
	Visibility        Visibility
	Settings          AnnotationSettings
	Resolved          ResolvedSettings
	DocReference      string // stable identifier "<pkg>.<Container>.<Member>"
}

// Equal reports deep, order-sensitive equality.
func (m MemberInfo) Equal(other MemberInfo) bool {
	if m.Name != other.Name ||
		m.Kind != other.Kind ||
		m.ReceiverType != other.ReceiverType ||
		m.Visibility != other.Visibility ||
		m.ReturnShape != other.ReturnShape ||
		m.DocReference != other.DocReference {
		return false
	}
	if len(m.Parameters) != len(other.Parameters) {
		return false
	}
	for i := range m.Parameters {
		if m.Parameters[i] != other.Parameters[i] {
			return false
		}
	}
	if !genericParametersEqual(m.GenericParameters, other.GenericParameters) {
		return false
	}
	if !m.Settings.Equal(other.Settings) || !m.Resolved.Equal(other.Resolved) {
		return false
	}
	return m.Container.Equal(other.Container)
}
