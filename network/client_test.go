package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewClient(t *testing.T) {
	Convey("Given a plain HTTP server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}))
		defer srv.Close()

		Convey("The default client carries the timeout", func() {
			c := NewClient(5*time.Second, false)
			So(c.Timeout, ShouldEqual, 5*time.Second)
			_, ok := c.Transport.(*http.Transport)
			So(ok, ShouldBeTrue)
		})

		Convey("The fingerprint client serves plain http through the fallback transport", func() {
			c := NewClient(5*time.Second, true)
			_, ok := c.Transport.(*FingerprintTransport)
			So(ok, ShouldBeTrue)

			resp, err := c.Get(srv.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			So(string(body), ShouldEqual, "ok")
		})
	})
}

func TestRewind(t *testing.T) {
	Convey("rewind", t, func() {
		Convey("Clones bodiless requests", func() {
			req, _ := http.NewRequest(http.MethodGet, "https://example.com/", nil)
			clone, err := rewind(req)
			So(err, ShouldBeNil)
			So(clone.URL.String(), ShouldEqual, "https://example.com/")
			So(clone, ShouldNotPointTo, req)
		})
	})
}
