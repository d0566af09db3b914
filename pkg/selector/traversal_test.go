package selector

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// chainGraph builds a -> b -> c -> d (a is b's parent, etc).
func chainGraph(t *testing.T) *ParsedGraph {
	t.Helper()
	nodes := []Node{
		NewNode("model.pkg.a", "a", "pkg", "a.sql", "a.sql", nil, nil, nil, KindModel, Payload{}),
		NewNode("model.pkg.b", "b", "pkg", "b.sql", "b.sql", []UniqueId{"model.pkg.a"}, nil, nil, KindModel, Payload{}),
		NewNode("model.pkg.c", "c", "pkg", "c.sql", "c.sql", []UniqueId{"model.pkg.b"}, nil, nil, KindModel, Payload{}),
		NewNode("model.pkg.d", "d", "pkg", "d.sql", "d.sql", []UniqueId{"model.pkg.c"}, nil, nil, KindModel, Payload{}),
	}
	edges := []Edge{
		{UniqueId: "model.pkg.b", Parents: []UniqueId{"model.pkg.a"}},
		{UniqueId: "model.pkg.c", Parents: []UniqueId{"model.pkg.b"}},
		{UniqueId: "model.pkg.d", Parents: []UniqueId{"model.pkg.c"}},
	}
	return buildGraph(t, nodes, edges)
}

func TestDescendantsAndAncestors(t *testing.T) {
	Convey("Given the chain a -> b -> c -> d", t, func() {
		g := chainGraph(t)
		b := newIdSet("model.pkg.b")

		Convey("unbounded descendants of b are c and d", func() {
			desc, err := g.Descendants(b, Unbounded())
			So(err, ShouldBeNil)
			So(len(desc), ShouldEqual, 2)
			So(desc.has("model.pkg.c"), ShouldBeTrue)
			So(desc.has("model.pkg.d"), ShouldBeTrue)
		})

		Convey("depth-1 descendants of b is only c", func() {
			desc, err := g.Descendants(b, BoundedDepth(1))
			So(err, ShouldBeNil)
			So(len(desc), ShouldEqual, 1)
			So(desc.has("model.pkg.c"), ShouldBeTrue)
		})

		Convey("depth-0 descendants is empty", func() {
			desc, err := g.Descendants(b, BoundedDepth(0))
			So(err, ShouldBeNil)
			So(len(desc), ShouldEqual, 0)
		})

		Convey("unbounded ancestors of c are a and b", func() {
			c := newIdSet("model.pkg.c")
			anc, err := g.Ancestors(c, Unbounded())
			So(err, ShouldBeNil)
			So(len(anc), ShouldEqual, 2)
			So(anc.has("model.pkg.a"), ShouldBeTrue)
			So(anc.has("model.pkg.b"), ShouldBeTrue)
		})

		Convey("a start id absent from the graph errors", func() {
			_, err := g.Descendants(newIdSet("model.pkg.ghost"), Unbounded())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSelectChildrensParents(t *testing.T) {
	Convey("Given the chain a -> b -> c -> d", t, func() {
		g := chainGraph(t)

		Convey("@b includes b's descendants and their ancestors", func() {
			out, err := g.SelectChildrensParents(newIdSet("model.pkg.b"))
			So(err, ShouldBeNil)
			for _, id := range []UniqueId{"model.pkg.a", "model.pkg.b", "model.pkg.c", "model.pkg.d"} {
				So(out.has(id), ShouldBeTrue)
			}
		})
	})
}
