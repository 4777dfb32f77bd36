package extract

import (
	"errors"
	"net/url"
	"testing"

	"github.com/pagelinks/pagelinks/constant"
	. "github.com/smartystreets/goconvey/convey"
)

const listing = `<html><head><title>Listing</title></head><body>
	<a href="/anime/one-piece-episod-12/">ep 12</a>
	<a href="/anime/one-piece-episode-13/">ep 13</a>
	<a href="https://cdn.example.org/download/mega-cloud-ep1">mega</a>
	<a href="relative/page">rel</a>
	<a href="/anime/one-piece-episod-12/#comments">dup with fragment</a>
	<a href="mailto:team@example.com">mail</a>
	<a href="javascript:void(0)">js</a>
	<a href="">empty</a>
	<a name="no-href">nothing</a>
</body></html>`

func TestExtractAll(t *testing.T) {
	Convey("Given a listing page", t, func() {
		c := Context{PageURL: "https://example.com/anime/one-piece/"}

		Convey("AllLinks resolves every http(s) anchor once", func() {
			links, err := Extract(AllLinks, listing, c)
			So(err, ShouldBeNil)
			So(links.Sorted(), ShouldResemble, []string{
				"https://cdn.example.org/download/mega-cloud-ep1",
				"https://example.com/anime/one-piece-episod-12/",
				"https://example.com/anime/one-piece-episode-13/",
				"https://example.com/anime/one-piece/relative/page",
			})
		})

		Convey("Every extracted link is absolute", func() {
			links, _ := Extract(AllLinks, listing, c)
			for l := range links {
				u, err := url.Parse(l)
				So(err, ShouldBeNil)
				So(u.IsAbs(), ShouldBeTrue)
				So(u.Host, ShouldNotBeEmpty)
			}
		})

		Convey("Extraction is idempotent", func() {
			first, _ := Extract(AllLinks, listing, c)
			second, _ := Extract(AllLinks, listing, c)
			So(second, ShouldResemble, first)
		})

		Convey("A base element changes the resolution root", func() {
			html := `<head><base href="https://mirror.example.net/root/"></head><a href="x">x</a>`
			links, err := Extract(AllLinks, html, c)
			So(err, ShouldBeNil)
			So(links.Sorted(), ShouldResemble, []string{"https://mirror.example.net/root/x"})
		})

		Convey("A page without anchors yields an empty set", func() {
			links, err := Extract(AllLinks, "<p>nothing here</p>", c)
			So(err, ShouldBeNil)
			So(links.Len(), ShouldEqual, 0)
		})

		Convey("Unknown modes are rejected", func() {
			_, err := Extract(Mode(42), listing, c)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestExtractEpisodes(t *testing.T) {
	Convey("Episode pattern", t, func() {
		Convey("show-episod-12 matches and show-episode-12 does not", func() {
			So(episodePattern.MatchString("show-episod-12"), ShouldBeTrue)
			So(episodePattern.MatchString("show-episode-12"), ShouldBeFalse)
		})

		Convey("Only -episod- anchors survive, resolved", func() {
			links, err := Extract(EpisodeLinks, listing, Context{PageURL: "https://example.com/anime/one-piece/"})
			So(err, ShouldBeNil)
			So(links.Sorted(), ShouldResemble, []string{"https://example.com/anime/one-piece-episod-12/"})
		})
	})

	Convey("Episode prefix", t, func() {
		domain, slug, err := SplitSeed("https://example.com/anime/one-piece/")
		So(err, ShouldBeNil)
		So(domain, ShouldEqual, "https://example.com")
		So(slug, ShouldEqual, "/anime/one-piece")

		Convey("Keeps links under domain + slug + '-'", func() {
			c := Context{PageURL: "https://example.com/anime/one-piece/page/2/", Domain: domain, Slug: slug}
			links, err := Extract(EpisodePrefixLinks, listing, c)
			So(err, ShouldBeNil)
			So(links.Sorted(), ShouldResemble, []string{
				"https://example.com/anime/one-piece-episod-12/",
				"https://example.com/anime/one-piece-episode-13/",
			})
		})

		Convey("Falls back to the page URL when no seed parts are given", func() {
			links, err := Extract(EpisodePrefixLinks, listing, Context{PageURL: "https://example.com/anime/one-piece/"})
			So(err, ShouldBeNil)
			So(links.Len(), ShouldEqual, 2)
		})

		Convey("SplitSeed rejects relative seeds", func() {
			_, _, err := SplitSeed("/anime/one-piece")
			So(err, ShouldNotBeNil)
		})

		Convey("SplitSeed rejects non-http schemes", func() {
			_, _, err := SplitSeed("ftp://example.com/anime/")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestExtractFuzzy(t *testing.T) {
	Convey("Fuzzy filter", t, func() {
		html := `<a href="/download/mega-cloud-ep1">m</a><a href="/download/drive-ep1">d</a>`
		c := Context{PageURL: "https://example.com/", Filter: "mega"}

		Convey("mega keeps the mega link", func() {
			links, err := Extract(FuzzyFiltered, html, c)
			So(err, ShouldBeNil)
			So(links.Sorted(), ShouldResemble, []string{"https://example.com/download/mega-cloud-ep1"})
		})

		Convey("xyz keeps nothing", func() {
			c.Filter = "xyz"
			links, err := Extract(FuzzyFiltered, html, c)
			So(err, ShouldBeNil)
			So(links.Len(), ShouldEqual, 0)
		})

		Convey("Any of several terms is enough", func() {
			c.Filter = "xyz | DRIVE, "
			links, _ := Extract(FuzzyFiltered, html, c)
			So(links.Sorted(), ShouldResemble, []string{"https://example.com/download/drive-ep1"})
		})

		Convey("No terms keep everything", func() {
			c.Filter = " , | "
			links, _ := Extract(FuzzyFiltered, html, c)
			So(links.Len(), ShouldEqual, 2)
		})

		Convey("A near miss passes the default threshold", func() {
			c.Filter = "MEGA-CLOD"
			links, _ := Extract(FuzzyFiltered, html, c)
			So(links.Has("https://example.com/download/mega-cloud-ep1"), ShouldBeTrue)
		})
	})

	Convey("PartialRatio", t, func() {
		So(PartialRatio("/download/mega-cloud-ep1", "mega"), ShouldEqual, 100)
		So(PartialRatio("mega", "/download/mega-cloud-ep1"), ShouldEqual, 100)
		So(PartialRatio("/download/mega-cloud-ep1", "xyz"), ShouldBeLessThan, 80)
		So(PartialRatio("/download/mega-cloud-ep1", "meqa"), ShouldEqual, 75)
		So(PartialRatio("", "mega"), ShouldEqual, 0)
	})

	Convey("SplitTerms", t, func() {
		So(SplitTerms("Mega| drive ,mega,,"), ShouldResemble, []string{"mega", "drive"})
		So(SplitTerms(""), ShouldBeEmpty)
	})
}

func TestEditBudget(t *testing.T) {
	Convey("Edit budget", t, func() {
		So(EditBudget(0), ShouldEqual, constant.DefaultMaxEdits)
		So(EditBudget(ExactMatch), ShouldEqual, 0)
		So(EditBudget(3), ShouldEqual, 3)
	})
}

func TestExtractRegex(t *testing.T) {
	Convey("Approximate regex", t, func() {
		html := `<a href="/show-episode-7">a</a><a href="/show-episod-8">b</a><a href="/about">c</a>`
		c := Context{PageURL: "https://example.com/", Filter: `EPISODE-\d+`, MaxEdits: 1}

		Convey("Allows one edit, case-insensitive", func() {
			links, err := Extract(RegexApprox, html, c)
			So(err, ShouldBeNil)
			So(links.Sorted(), ShouldResemble, []string{
				"https://example.com/show-episod-8",
				"https://example.com/show-episode-7",
			})
		})

		Convey("Defaults to one edit when MaxEdits is unset", func() {
			c.MaxEdits = 0
			links, err := Extract(RegexApprox, html, c)
			So(err, ShouldBeNil)
			So(links.Len(), ShouldEqual, 2)
		})

		Convey("Exact when no edits are allowed", func() {
			c.MaxEdits = ExactMatch
			links, _ := Extract(RegexApprox, html, c)
			So(links.Sorted(), ShouldResemble, []string{"https://example.com/show-episode-7"})
		})

		Convey("A malformed pattern is a ParseError", func() {
			c.Filter = `episode-(\d+`
			links, err := Extract(RegexApprox, html, c)
			So(links, ShouldBeNil)
			var parseErr *ParseError
			So(errors.As(err, &parseErr), ShouldBeTrue)
			So(parseErr.Pattern, ShouldEqual, `episode-(\d+`)
		})
	})
}

func TestExtractMedia(t *testing.T) {
	Convey("Player media", t, func() {
		html := `<html><body>
			<iframe src="//player.example.net/embed/42"></iframe>
			<video><source src="/media/ep1.mp4" type="video/mp4"></video>
			<script>
				var cfg = {"file":"https:\/\/cdn.example.net\/hls\/ep1\/master.m3u8?token=abc"};
				var alt = 'http://backup.example.net/ep1.mp4';
			</script>
			<a href="/not-media">x</a>
		</body></html>`

		links, err := Extract(PlayerMedia, html, Context{PageURL: "https://example.com/watch/ep1"})
		So(err, ShouldBeNil)
		So(links.Sorted(), ShouldResemble, []string{
			"http://backup.example.net/ep1.mp4",
			"https://cdn.example.net/hls/ep1/master.m3u8?token=abc",
			"https://example.com/media/ep1.mp4",
			"https://player.example.net/embed/42",
		})
	})
}

func TestMode(t *testing.T) {
	Convey("Mode", t, func() {
		Convey("Names round trip", func() {
			for _, name := range Modes() {
				m, err := ParseMode(name)
				So(err, ShouldBeNil)
				So(m.String(), ShouldEqual, name)
			}
		})

		Convey("Unknown names fail", func() {
			_, err := ParseMode("everything")
			So(err, ShouldNotBeNil)
		})

		Convey("Parsing is case-insensitive", func() {
			m, err := ParseMode(" Episode-Prefix ")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, EpisodePrefixLinks)
		})

		Convey("Families", func() {
			So(PlayerMedia.Paginates(), ShouldBeFalse)
			So(AllLinks.Paginates(), ShouldBeTrue)
			So(EpisodePrefixLinks.SlugRelative(), ShouldBeTrue)
			So(EpisodeLinks.SlugRelative(), ShouldBeFalse)
			So(RegexApprox.TakesFilter(), ShouldBeTrue)
			So(Mode(-1).Valid(), ShouldBeFalse)
		})

		Convey("Text marshalling", func() {
			var m Mode
			So(m.UnmarshalText([]byte("fuzzy")), ShouldBeNil)
			So(m, ShouldEqual, FuzzyFiltered)
			b, err := m.MarshalText()
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, "fuzzy")
		})
	})
}

func TestLinkSet(t *testing.T) {
	Convey("LinkSet", t, func() {
		s := NewLinkSet("b", "a")
		So(s.Merge(NewLinkSet("a", "c")), ShouldEqual, 1)
		So(s.Sorted(), ShouldResemble, []string{"a", "b", "c"})
		So(s.Has("c"), ShouldBeTrue)
	})
}
