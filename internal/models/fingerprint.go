package models

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// fingerprinter builds a canonical byte encoding of a snapshot and hashes it
// with xxhash. Every field is length-prefixed so adjacent fields can never
// collide, and sequence order feeds the digest directly: equal snapshots
// produce equal fingerprints, and reordering a sequence changes the hash.
type fingerprinter struct {
	digest *xxhash.Digest
	buf    [8]byte
}

func newFingerprinter() *fingerprinter {
	return &fingerprinter{digest: xxhash.New()}
}

func (f *fingerprinter) str(s string) {
	f.num(uint64(len(s)))
	_, _ = f.digest.WriteString(s)
}

func (f *fingerprinter) num(n uint64) {
	binary.LittleEndian.PutUint64(f.buf[:], n)
	_, _ = f.digest.Write(f.buf[:])
}

func (f *fingerprinter) boolean(b bool) {
	if b {
		f.num(1)
	} else {
		f.num(0)
	}
}

func (f *fingerprinter) optStr(s *string) {
	if s == nil {
		f.num(0)
		return
	}
	f.num(1)
	f.str(*s)
}

func (f *fingerprinter) settings(s AnnotationSettings) {
	f.optStr(s.ExtensionClassName)
	f.optStr(s.ExtensionMethodName)
	f.optStr(s.GroupName)
}

func (f *fingerprinter) resolved(s ResolvedSettings) {
	f.str(s.ExtensionClassName)
	f.str(s.ExtensionMethodName)
	f.str(s.GroupName)
}

func (f *fingerprinter) generics(params []GenericParameter) {
	f.num(uint64(len(params)))
	for _, p := range params {
		f.str(p.Name)
		f.str(p.ConstraintClause)
	}
}

func (f *fingerprinter) container(c ContainerInfo) {
	f.str(c.Name)
	f.str(c.QualifiedTypeExpression)
	f.str(c.GroupName)
	f.num(uint64(c.Visibility))
	f.num(uint64(len(c.ImportStatements)))
	for _, imp := range c.ImportStatements {
		f.str(imp)
	}
	f.generics(c.GenericParameters)
	f.settings(c.Settings)
}

func (f *fingerprinter) member(m MemberInfo) {
	f.str(m.Name)
	f.num(uint64(m.Kind))
	f.str(m.ReceiverType)
	f.num(uint64(m.Visibility))
	f.str(m.DocReference)
	f.num(uint64(len(m.Parameters)))
	for _, p := range m.Parameters {
		f.str(p.Name)
		f.str(p.TypeExpression)
	}
	f.generics(m.GenericParameters)
	f.str(m.ReturnShape.UnderlyingTypeExpression)
	f.boolean(m.ReturnShape.WrapsAsyncResult)
	f.settings(m.Settings)
	f.resolved(m.Resolved)
	f.container(m.Container)
}

// Fingerprint implements Snapshot.
func (a AsyncContainer) Fingerprint() uint64 {
	f := newFingerprinter()
	f.str("async")
	f.str(a.PackagePath)
	f.container(a.Container)
	f.resolved(a.Resolved)
	f.num(uint64(len(a.Members)))
	for _, m := range a.Members {
		f.member(m)
	}
	return f.digest.Sum64()
}

// Fingerprint implements Snapshot.
func (u UnionSnapshot) Fingerprint() uint64 {
	f := newFingerprinter()
	f.str("union")
	f.str(u.PackagePath)
	f.str(u.Union.Name)
	f.num(uint64(u.Union.Kind))
	f.num(uint64(u.Union.Visibility))
	f.str(u.Union.GroupName)
	f.str(u.Union.QualifiedTypeExpression)
	f.generics(u.Union.GenericParameters)
	f.boolean(u.Union.Settings.GenerateMatchHelper)
	f.boolean(u.Union.Settings.GeneratePolymorphicSerialization)
	f.boolean(u.Union.Settings.GeneratePrivateConstructor)
	f.num(uint64(len(u.Union.Members)))
	for _, m := range u.Union.Members {
		f.str(m.Name)
		f.num(uint64(m.Visibility))
	}
	return f.digest.Sum64()
}
