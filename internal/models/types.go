package models

// Visibility classifies a declaration's access level
type Visibility int

const (
	VisibilityPublic   Visibility = iota // exported identifier
	VisibilityInternal                   // unexported identifier
)

// String returns the string representation of the visibility class
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// MemberKind classifies how a matched member is declared
type MemberKind int

const (
	InstanceMethod  MemberKind = iota // method with a receiver of the container type
	ExtensionMethod                   // top-level func whose first parameter is the container type
)

// String returns the string representation of the member kind
func (k MemberKind) String() string {
	switch k {
	case InstanceMethod:
		return "instance"
	case ExtensionMethod:
		return "extension"
	default:
		return "unknown"
	}
}

// UnionKind classifies how a union declaration is expressed
type UnionKind int

const (
	ReferenceStyle UnionKind = iota // interface union; variants embed the interface
	ValueStyle                      // struct union; variants are defined types over it
)

// String returns the string representation of the union kind
func (k UnionKind) String() string {
	switch k {
	case ReferenceStyle:
		return "reference"
	case ValueStyle:
		return "value"
	default:
		return "unknown"
	}
}

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)

// Span anchors a snapshot or diagnostic to its source location
type Span struct {
	File   string // file path
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}
