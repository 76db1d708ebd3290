package loom

// Constructible is the construction-capability marker constraint. It carries
// no method requirements; the generator recognizes it by name and always
// orders it last in a canonicalized constraint clause.
type Constructible interface {
	any
}
