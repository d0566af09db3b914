package selector

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/wayneeseguin/nodeselect/internal/utils/fixtures"
)

func TestBuildAndSelectFqn(t *testing.T) {
	Convey("Given a model graph with a dependent test", t, func() {
		b := fixtures.NewGraphBuilder().
			Model("model.pkg.orders", nil, "nightly").
			Model("model.pkg.customers", []string{"model.pkg.orders"}).
			Test("test.pkg.not_null_orders_id", []string{"model.pkg.orders"})
		nodes, edges := b.Build()

		ns, err := Build(nodes, edges, nil)
		So(err, ShouldBeNil)

		Convey("selecting by fqn matches only that model, plus its eagerly selected test", func() {
			ids, err := ns.Select("orders")
			So(err, ShouldBeNil)
			So(len(ids), ShouldEqual, 2)
			So(containsId(ids, "model.pkg.orders"), ShouldBeTrue)
			So(containsId(ids, "model.pkg.customers"), ShouldBeFalse)
		})

		Convey("eager indirect selection includes dependent tests", func() {
			ids, err := ns.Select("orders")
			So(err, ShouldBeNil)
			has := func(id UniqueId) bool {
				for _, x := range ids {
					if x == id {
						return true
					}
				}
				return false
			}
			So(has("model.pkg.orders"), ShouldBeTrue)
			So(has("test.pkg.not_null_orders_id"), ShouldBeTrue)
		})

		Convey("tag selection matches by normalized tag", func() {
			ids, err := ns.Select("tag:nightly")
			So(err, ShouldBeNil)
			So(len(ids), ShouldEqual, 2)
			So(containsId(ids, "model.pkg.orders"), ShouldBeTrue)
			So(containsId(ids, "test.pkg.not_null_orders_id"), ShouldBeTrue)
		})

		Convey("resource_type filtering restricts output to models", func() {
			filter, err := SomeResourceTypes("model")
			So(err, ShouldBeNil)
			ids, err := ns.SelectType("orders+", filter)
			So(err, ShouldBeNil)
			for _, id := range ids {
				n, ok := ns.graph.Node(id)
				So(ok, ShouldBeTrue)
				So(n.Kind, ShouldEqual, KindModel)
			}
		})

		Convey("an unknown resource type key is rejected", func() {
			_, err := SomeResourceTypes("not_a_kind")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestIndirectSelectionModes(t *testing.T) {
	Convey("Given unrelated orders and customers models with a test spanning both", t, func() {
		b := fixtures.NewGraphBuilder().
			Model("model.pkg.orders", nil).
			Model("model.pkg.customers", nil).
			Test("test.pkg.relationship", []string{"model.pkg.orders", "model.pkg.customers"})
		nodes, edges := b.Build()

		Convey("eager mode includes the test when only one parent is selected", func() {
			ns, err := BuildWithDefaultIndirect(nodes, edges, nil, IndirectEager)
			So(err, ShouldBeNil)
			ids, err := ns.Select("orders")
			So(err, ShouldBeNil)
			So(containsId(ids, "test.pkg.relationship"), ShouldBeTrue)
		})

		Convey("cautious mode excludes the test when only one parent is selected", func() {
			ns, err := BuildWithDefaultIndirect(nodes, edges, nil, IndirectCautious)
			So(err, ShouldBeNil)
			ids, err := ns.Select("orders")
			So(err, ShouldBeNil)
			So(containsId(ids, "test.pkg.relationship"), ShouldBeFalse)
		})

		Convey("cautious mode includes the test once both parents are selected", func() {
			ns, err := BuildWithDefaultIndirect(nodes, edges, nil, IndirectCautious)
			So(err, ShouldBeNil)
			ids, err := ns.Select("orders customers")
			So(err, ShouldBeNil)
			So(containsId(ids, "test.pkg.relationship"), ShouldBeTrue)
		})

		Convey("empty mode never includes indirectly-selected tests", func() {
			ns, err := BuildWithDefaultIndirect(nodes, edges, nil, IndirectEmpty)
			So(err, ShouldBeNil)
			ids, err := ns.Select("orders customers")
			So(err, ShouldBeNil)
			So(containsId(ids, "test.pkg.relationship"), ShouldBeFalse)
		})
	})
}

func TestExpectExists(t *testing.T) {
	Convey("Given a selector with no matching nodes", t, func() {
		b := fixtures.NewGraphBuilder().Model("model.pkg.orders", nil)
		nodes, edges := b.Build()
		ns, err := Build(nodes, edges, nil)
		So(err, ShouldBeNil)

		Convey("a plain non-matching criterion simply returns empty", func() {
			ids, err := ns.Select("does_not_exist")
			So(err, ShouldBeNil)
			So(len(ids), ShouldEqual, 0)
		})
	})
}

func TestSelectGroupWithExclude(t *testing.T) {
	Convey("Given a small graph and a select/exclude pair", t, func() {
		b := fixtures.NewGraphBuilder().
			Model("model.pkg.a", nil, "keep").
			Model("model.pkg.b", nil, "drop")
		nodes, edges := b.Build()
		ns, err := Build(nodes, edges, nil)
		So(err, ShouldBeNil)

		group, err := BuildSelectionExpression([]string{"tag:keep", "tag:drop"}, []string{"tag:drop"}, IndirectEager)
		So(err, ShouldBeNil)

		ids, err := ns.SelectGroupType(group, AllResourceTypes())
		So(err, ShouldBeNil)
		So(len(ids), ShouldEqual, 1)
		So(ids[0], ShouldEqual, UniqueId("model.pkg.a"))
	})
}

func TestUpdateChainsPreviousState(t *testing.T) {
	Convey("Given an original graph and an updated one with a new node", t, func() {
		origNodes, origEdges := fixtures.NewGraphBuilder().Model("model.pkg.a", nil).Build()
		ns, err := Build(origNodes, origEdges, nil)
		So(err, ShouldBeNil)

		newNodes, newEdges := fixtures.NewGraphBuilder().
			Model("model.pkg.a", nil).
			Model("model.pkg.b", nil).
			Build()

		updated, err := ns.Update(newNodes, newEdges)
		So(err, ShouldBeNil)

		Convey("state:new matches only the node absent from the previous graph", func() {
			ids, err := updated.Select("state:new")
			So(err, ShouldBeNil)
			So(len(ids), ShouldEqual, 1)
			So(ids[0], ShouldEqual, UniqueId("model.pkg.b"))
		})
	})
}

func containsId(ids []UniqueId, want UniqueId) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
