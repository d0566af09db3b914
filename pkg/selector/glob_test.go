package selector

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGlobMatch(t *testing.T) {
	Convey("Given filename-glob patterns", t, func() {
		Convey("* matches any run of characters, including separators", func() {
			So(globMatch("staging/*.sql", "staging/stg_orders.sql"), ShouldBeTrue)
			So(globMatch("*orders*", "models/staging/stg_orders.sql"), ShouldBeTrue)
		})

		Convey("? matches exactly one character", func() {
			So(globMatch("stg_order?.sql", "stg_orders.sql"), ShouldBeTrue)
			So(globMatch("stg_order?.sql", "stg_orderss.sql"), ShouldBeFalse)
		})

		Convey("a character class matches one of its members", func() {
			So(globMatch("stg_[ob]rders.sql", "stg_orders.sql"), ShouldBeTrue)
			So(globMatch("stg_[ob]rders.sql", "stg_brders.sql"), ShouldBeTrue)
			So(globMatch("stg_[ob]rders.sql", "stg_xrders.sql"), ShouldBeFalse)
		})

		Convey("matching is anchored to the whole string", func() {
			So(globMatch("orders", "orders.sql"), ShouldBeFalse)
		})

		Convey("literal regex metacharacters in the pattern are escaped", func() {
			So(globMatch("stg_orders(v2).sql", "stg_orders(v2).sql"), ShouldBeTrue)
		})
	})
}

func TestIsGlobPattern(t *testing.T) {
	Convey("Given values with and without glob metacharacters", t, func() {
		So(isGlobPattern("stg_orders.sql"), ShouldBeFalse)
		So(isGlobPattern("stg_*.sql"), ShouldBeTrue)
		So(isGlobPattern("stg_order?.sql"), ShouldBeTrue)
		So(isGlobPattern("stg_[ob]rders.sql"), ShouldBeTrue)
	})
}
