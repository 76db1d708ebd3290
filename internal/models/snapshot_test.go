package models

import "testing"

func sampleUnion() UnionDefinition {
	return UnionDefinition{
		Name:                    "Shape",
		Kind:                    ReferenceStyle,
		Visibility:              VisibilityPublic,
		GroupName:               "shapes",
		QualifiedTypeExpression: "Shape",
		Settings:                DefaultUnionSettings(),
		Members: []UnionMember{
			{Name: "Circle", Visibility: VisibilityPublic},
			{Name: "Rectangle", Visibility: VisibilityPublic},
		},
		Span: Span{File: "shapes.go", Line: 10, Column: 1},
	}
}

func sampleContainer() AsyncContainer {
	class := "UserClient"
	return AsyncContainer{
		PackagePath: "./tasks",
		Container: ContainerInfo{
			Name:                    "UserService",
			QualifiedTypeExpression: "UserService",
			GroupName:               "tasks",
			ImportStatements:        []string{`"context"`},
			Visibility:              VisibilityPublic,
			Settings:                AnnotationSettings{ExtensionClassName: &class},
		},
		Members: []MemberInfo{
			{
				Name:         "FetchUser",
				Parameters:   []Param{{Name: "ctx", TypeExpression: "context.Context"}},
				ReturnShape:  ReturnShape{UnderlyingTypeExpression: "User", WrapsAsyncResult: true},
				Kind:         InstanceMethod,
				ReceiverType: "*UserService",
				Visibility:   VisibilityPublic,
				Resolved: ResolvedSettings{
					ExtensionClassName:  "UserClient",
					ExtensionMethodName: "FetchUserAsync",
					GroupName:           "UserService",
				},
				DocReference: "tasks.UserService.FetchUser",
			},
		},
		Resolved: ResolvedSettings{
			ExtensionClassName:  "UserClient",
			ExtensionMethodName: "UserServiceAsync",
			GroupName:           "UserService",
		},
	}
}

func TestUnionSnapshot_EqualIgnoresSpan(t *testing.T) {
	a := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	b := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	b.Union.Span = Span{File: "shapes.go", Line: 99, Column: 5}

	if !a.EqualSnapshot(b) {
		t.Error("snapshots differing only in span should be equal")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprint should not include the span")
	}
}

func TestUnionSnapshot_EqualSensitiveToMemberOrder(t *testing.T) {
	a := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	b := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	b.Union.Members[0], b.Union.Members[1] = b.Union.Members[1], b.Union.Members[0]

	if a.EqualSnapshot(b) {
		t.Error("member order is semantic; reordered snapshots should differ")
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("fingerprint should be order sensitive")
	}
}

func TestUnionSnapshot_EqualDetectsMemberChange(t *testing.T) {
	a := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	b := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	b.Union.Members[1].Name = "Square"

	if a.EqualSnapshot(b) {
		t.Error("renamed member should break equality")
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("renamed member should change the fingerprint")
	}
}

func TestUnionSnapshot_Key(t *testing.T) {
	snapshot := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	if got := snapshot.Key(); got != "./shapes:union:Shape" {
		t.Errorf("unexpected key: %s", got)
	}
}

func TestAsyncContainer_EqualAndFingerprint(t *testing.T) {
	a := sampleContainer()
	b := sampleContainer()

	if !a.EqualSnapshot(b) {
		t.Error("identical containers should be equal")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical containers should share a fingerprint")
	}

	b.Members[0].ReturnShape.WrapsAsyncResult = false
	if a.EqualSnapshot(b) {
		t.Error("changed return shape should break equality")
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("changed return shape should change the fingerprint")
	}
}

func TestSnapshot_EqualityIsAnEquivalence(t *testing.T) {
	unionA := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	unionB := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	unionC := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	unionC.Union.Span = Span{File: "other.go", Line: 3, Column: 1}
	renamed := UnionSnapshot{PackagePath: "./shapes", Union: sampleUnion()}
	renamed.Union.Members[0].Name = "Triangle"

	cases := []struct {
		name    string
		a, b, c Snapshot
		equal   bool
	}{
		{"equal unions", unionA, unionB, unionC, true},
		{"unequal unions", unionA, renamed, renamed, false},
		{"equal containers", sampleContainer(), sampleContainer(), sampleContainer(), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.a.EqualSnapshot(tc.a) {
				t.Error("equality should be reflexive")
			}
			if tc.a.EqualSnapshot(tc.b) != tc.equal {
				t.Errorf("a = b should be %v", tc.equal)
			}
			if tc.b.EqualSnapshot(tc.a) != tc.equal {
				t.Error("equality should be symmetric")
			}
			if tc.equal && tc.b.EqualSnapshot(tc.c) && !tc.a.EqualSnapshot(tc.c) {
				t.Error("equality should be transitive")
			}
		})
	}
}

func TestAsyncContainer_Key(t *testing.T) {
	container := sampleContainer()
	if got := container.Key(); got != "./tasks:async:UserService" {
		t.Errorf("unexpected key: %s", got)
	}
}

func TestSnapshot_CrossKindInequality(t *testing.T) {
	union := UnionSnapshot{PackagePath: "p", Union: sampleUnion()}
	container := sampleContainer()

	if union.EqualSnapshot(container) {
		t.Error("snapshots of different kinds are never equal")
	}
}

func TestPackageSnapshot_SnapshotsOrder(t *testing.T) {
	pkg := PackageSnapshot{
		PackageName: "shapes",
		PackagePath: "./shapes",
		Unions:      []UnionSnapshot{{PackagePath: "./shapes", Union: sampleUnion()}},
		Containers:  []AsyncContainer{sampleContainer()},
	}

	snapshots := pkg.Snapshots()
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].Key() != "./shapes:union:Shape" {
		t.Error("unions should come first")
	}
	if snapshots[1].Key() != "./tasks:async:UserService" {
		t.Error("containers should follow unions")
	}
}
