package selector

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func buildGraph(t *testing.T, nodes []Node, edges []Edge) *ParsedGraph {
	t.Helper()
	g, err := NewParsedGraph(nodes, edges)
	if err != nil {
		t.Fatalf("unexpected error building graph: %v", err)
	}
	return g
}

func TestNewParsedGraph(t *testing.T) {
	Convey("Given a small model graph", t, func() {
		a := NewNode("model.pkg.a", "a", "pkg", "a.sql", "a.sql", nil, nil, nil, KindModel, Payload{})
		b := NewNode("model.pkg.b", "b", "pkg", "b.sql", "b.sql", []UniqueId{"model.pkg.a"}, nil, nil, KindModel, Payload{})

		Convey("it builds mutual parent/child adjacency", func() {
			g := buildGraph(t, []Node{a, b}, []Edge{{UniqueId: "model.pkg.b", Parents: []UniqueId{"model.pkg.a"}}})

			So(g.Len(), ShouldEqual, 2)
			So(g.Children("model.pkg.a").has("model.pkg.b"), ShouldBeTrue)
			So(g.Parents("model.pkg.b").has("model.pkg.a"), ShouldBeTrue)
			So(g.HasNode("model.pkg.a"), ShouldBeTrue)
			So(g.HasNode("model.pkg.missing"), ShouldBeFalse)
		})

		Convey("an edge referencing an unknown node is rejected", func() {
			_, err := NewParsedGraph([]Node{a}, []Edge{{UniqueId: "model.pkg.a", Parents: []UniqueId{"model.pkg.ghost"}}})
			So(err, ShouldNotBeNil)
		})

		Convey("an edge whose own id is unknown is rejected", func() {
			_, err := NewParsedGraph([]Node{a}, []Edge{{UniqueId: "model.pkg.ghost", Parents: nil}})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNodeTagsNormalizeToLowercase(t *testing.T) {
	Convey("Given a node built with mixed-case tags", t, func() {
		n := NewNode("model.pkg.a", "a", "pkg", "a.sql", "a.sql", nil, []string{"Nightly", "PII"}, nil, KindModel, Payload{})

		Convey("HasTag matches case-insensitively at construction time", func() {
			So(n.HasTag("nightly"), ShouldBeTrue)
			So(n.HasTag("pii"), ShouldBeTrue)
			So(n.HasTag("NIGHTLY"), ShouldBeTrue)
		})
	})
}

func TestNodeKindFromKey(t *testing.T) {
	Convey("Given the canonical kind keys", t, func() {
		Convey("every declared kind round-trips through its key", func() {
			for _, k := range AllNodeKinds() {
				resolved, ok := NodeKindFromKey(k.Key())
				So(ok, ShouldBeTrue)
				So(resolved, ShouldEqual, k)
			}
		})

		Convey("an unknown key does not resolve", func() {
			_, ok := NodeKindFromKey("not_a_kind")
			So(ok, ShouldBeFalse)
		})

		Convey("sql operation has a multi-word key", func() {
			k, ok := NodeKindFromKey("sql operation")
			So(ok, ShouldBeTrue)
			So(k, ShouldEqual, KindSqlOperation)
		})
	})
}
