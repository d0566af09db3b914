package selector

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApplySetOp(t *testing.T) {
	Convey("Given two overlapping sets", t, func() {
		a := newIdSet("x", "y")
		b := newIdSet("y", "z")

		Convey("union combines all members", func() {
			out := applySetOp(SetOpUnion, []idSet{a, b})
			So(len(out), ShouldEqual, 3)
			So(out.has("x"), ShouldBeTrue)
			So(out.has("y"), ShouldBeTrue)
			So(out.has("z"), ShouldBeTrue)
		})

		Convey("intersection keeps only shared members", func() {
			out := applySetOp(SetOpIntersection, []idSet{a, b})
			So(len(out), ShouldEqual, 1)
			So(out.has("y"), ShouldBeTrue)
		})

		Convey("difference removes members of the second set from the first", func() {
			out := applySetOp(SetOpDifference, []idSet{a, b})
			So(len(out), ShouldEqual, 1)
			So(out.has("x"), ShouldBeTrue)
		})
	})

	Convey("Given a single set", t, func() {
		a := newIdSet("x")

		Convey("intersection of one set returns a clone of itself", func() {
			out := intersectSets([]idSet{a})
			So(len(out), ShouldEqual, 1)
			So(out.has("x"), ShouldBeTrue)
		})

		Convey("difference of one set returns a clone of itself", func() {
			out := differenceSets([]idSet{a})
			So(len(out), ShouldEqual, 1)
			So(out.has("x"), ShouldBeTrue)
		})
	})

	Convey("Given no sets at all", t, func() {
		Convey("every combinator yields the empty set", func() {
			So(len(unionSets(nil)), ShouldEqual, 0)
			So(len(intersectSets(nil)), ShouldEqual, 0)
			So(len(differenceSets(nil)), ShouldEqual, 0)
		})
	})
}
