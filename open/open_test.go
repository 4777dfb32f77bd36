package open

import (
	"testing"

	"github.com/pagelinks/pagelinks/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given an export path", t, func() {
		target := "/tmp/links.csv"

		Convey("Linux uses xdg-open or the chosen app", func() {
			cmd, err := command(constant.Linux, target, "")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", target})

			cmd, err = command(constant.Linux, target, "libreoffice")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"libreoffice", target})
		})

		Convey("macOS passes the app with -a", func() {
			cmd, err := command(constant.Darwin, target, "Numbers")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", "-a", "Numbers", target})
		})

		Convey("Windows escapes ampersands for start", func() {
			cmd, err := command(constant.Windows, "https://x.test/?a=1&b=2", "firefox")
			So(err, ShouldBeNil)
			So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://x.test/?a=1^&b=2")
		})

		Convey("Unknown systems are an error", func() {
			_, err := command("plan9", target, "")
			So(err, ShouldNotBeNil)
		})
	})
}
