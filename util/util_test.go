package util

import (
	"testing"

	"github.com/pagelinks/pagelinks/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "link", "links"), ShouldEqual, "1 link")
		So(Quantify(2, "link", "links"), ShouldEqual, "2 links")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestSplitLines(t *testing.T) {
	Convey("SplitLines", t, func() {
		Convey("Drops blanks and trims", func() {
			in := "  https://a.example/ \r\n\n\thttps://b.example/\n   \n"
			So(SplitLines(in), ShouldResemble, []string{"https://a.example/", "https://b.example/"})
		})
		Convey("Empty input yields nothing", func() {
			So(SplitLines(""), ShouldBeEmpty)
		})
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		lo.Must0(filesystem.API().MkdirAll("/cache/exports", 0755))
		lo.Must0(filesystem.API().WriteFile("/cache/exports/a.csv", []byte("x"), 0644))

		So(Delete("/cache"), ShouldBeNil)
		So(lo.Must(filesystem.API().Exists("/cache")), ShouldBeFalse)
		So(Delete("/nope"), ShouldNotBeNil)
	})
}
