package where

import (
	"path/filepath"
	"testing"

	"github.com/pagelinks/pagelinks/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, filepath.Join("/tmp", "pagelinks-test"))
			So(Config(), ShouldEqual, filepath.Join("/tmp", "pagelinks-test"))
		})

		Convey("Logs() and Exports() are created", func() {
			So(lo.Must(filesystem.API().IsDir(Logs())), ShouldBeTrue)
			So(lo.Must(filesystem.API().IsDir(Exports())), ShouldBeTrue)
		})

		Convey("Queries() lives in the cache", func() {
			So(filepath.Dir(Queries()), ShouldEqual, Cache())
		})
	})
}
