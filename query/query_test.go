package query

import (
	"testing"

	"github.com/pagelinks/pagelinks/filesystem"
	"github.com/pagelinks/pagelinks/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given a search history", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)

		So(Remember("Honey Minta Maaf"), ShouldBeNil)
		So(Remember("honey   minta maaf"), ShouldBeNil)
		So(Remember("Honey Lemon Soda"), ShouldBeNil)

		Convey("The more used query is suggested first", func() {
			s := SuggestMany("honey")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "honey minta maaf")
			So(Suggest("hny").MustGet(), ShouldEqual, "honey minta maaf")
		})

		Convey("Unrelated input suggests nothing", func() {
			So(SuggestMany("zzzz"), ShouldBeEmpty)
			So(Suggest("zzzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Forgotten queries are not suggested", func() {
			So(Forget("Honey Lemon Soda"), ShouldBeNil)
			So(SuggestMany("lemon"), ShouldBeEmpty)
		})

		Convey("Suggestions can be switched off", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("honey"), ShouldBeEmpty)
		})

		Convey("Blank queries are not stored", func() {
			So(Remember("   "), ShouldBeNil)
			So(normalize("  A   b "), ShouldEqual, "a b")
		})
	})
}
