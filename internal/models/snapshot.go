package models

// Snapshot is the equality-comparable semantic summary of one declaration.
// It is both the render input and the incremental cache key: the pipeline
// re-renders a declaration only when its snapshot is no longer equal to the
// cached one.
type Snapshot interface {
	// Key identifies the originating declaration across cycles.
	Key() string
	// Fingerprint is a 64-bit hash consistent with EqualSnapshot.
	Fingerprint() uint64
	// EqualSnapshot reports deep, order-sensitive equality.
	EqualSnapshot(other Snapshot) bool
}

// AsyncContainer bundles a container with its matched members; it is the
// render unit for the async-wrapper artifact kind.
type AsyncContainer struct {
	PackagePath string
	Container   ContainerInfo
	Members     []MemberInfo
	Resolved    ResolvedSettings
}

// Key implements Snapshot.
func (a AsyncContainer) Key() string {
	return a.PackagePath + ":async:" + a.Container.Name
}

// EqualSnapshot implements Snapshot.
func (a AsyncContainer) EqualSnapshot(other Snapshot) bool {
	b, ok := other.(AsyncContainer)
	if !ok {
		return false
	}
	if a.PackagePath != b.PackagePath || !a.Resolved.Equal(b.Resolved) {
		return false
	}
	if !a.Container.Equal(b.Container) {
		return false
	}
	if len(a.Members) != len(b.Members) {
		return false
	}
	for i := range a.Members {
		if !a.Members[i].Equal(b.Members[i]) {
			return false
		}
	}
	return true
}

// UnionSnapshot wraps a UnionDefinition with its package identity; it is the
// render unit for the union artifact kind.
type UnionSnapshot struct {
	PackagePath string
	Union       UnionDefinition
}

// Key implements Snapshot.
func (u UnionSnapshot) Key() string {
	return u.PackagePath + ":union:" + u.Union.Name
}

// EqualSnapshot implements Snapshot.
func (u UnionSnapshot) EqualSnapshot(other Snapshot) bool {
	b, ok := other.(UnionSnapshot)
	if !ok {
		return false
	}
	return u.PackagePath == b.PackagePath && u.Union.Equal(b.Union)
}

// PackageSnapshot holds everything extracted from one package in one cycle.
type PackageSnapshot struct {
	PackageName string
	PackagePath string
	Unions      []UnionSnapshot
	Containers  []AsyncContainer
}

// Snapshots returns the package's render units in a stable order: unions
// first, then async containers, each in extraction order.
func (p *PackageSnapshot) Snapshots() []Snapshot {
	snapshots := make([]Snapshot, 0, len(p.Unions)+len(p.Containers))
	for _, union := range p.Unions {
		snapshots = append(snapshots, union)
	}
	for _, container := range p.Containers {
		snapshots = append(snapshots, container)
	}
	return snapshots
}
