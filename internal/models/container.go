package models

// ContainerInfo is the canonical summary of an annotated container
// declaration. It is a value type: two instances are equal iff every field,
// including sequence order, matches.
type ContainerInfo struct {
	Name                    string
	QualifiedTypeExpression string   // name plus its own type parameter list, e.g. "Result[T]"
	GroupName               string   // package name unless overridden
	ImportStatements        []string // dedup, first-appearance order, union across contributing files
	GenericParameters       []GenericParameter
	Visibility              Visibility
	Settings                AnnotationSettings
}

// Equal reports deep, order-sensitive equality.
func (c ContainerInfo) Equal(other ContainerInfo) bool {
	if c.Name != other.Name ||
		c.QualifiedTypeExpression != other.QualifiedTypeExpression ||
		c.GroupName != other.GroupName ||
		c.Visibility != other.Visibility {
		return false
	}
	if !stringsEqual(c.ImportStatements, other.ImportStatements) {
		return false
	}
	if !genericParametersEqual(c.GenericParameters, other.GenericParameters) {
		return false
	}
	return c.Settings.Equal(other.Settings)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
