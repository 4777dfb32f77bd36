package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pagelinks/pagelinks/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFetch(t *testing.T) {
	Convey("Given a listing server", t, func() {
		var gotAgent string
		mux := http.NewServeMux()
		mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = io.WriteString(w, `<a href="/x">x</a>`)
		})
		mux.HandleFunc("/latin1", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte{'c', 'a', 'f', 0xe9})
		})
		mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		mux.HandleFunc("/cut", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Content-Length", "4096")
			_, _ = io.WriteString(w, `<a href="/x">x</a>`)
		})
		mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := New(Options{Timeout: 2 * time.Second})
		ctx := context.Background()

		Convey("It returns the body and sends the browser user agent", func() {
			body, err := f.Fetch(ctx, srv.URL+"/ok")
			So(err, ShouldBeNil)
			So(body, ShouldEqual, `<a href="/x">x</a>`)
			So(gotAgent, ShouldEqual, constant.UserAgent)
		})

		Convey("It decodes declared charsets to UTF-8", func() {
			body, err := f.Fetch(ctx, srv.URL+"/latin1")
			So(err, ShouldBeNil)
			So(body, ShouldEqual, "café")
		})

		Convey("A 404 is an HTTPStatusError", func() {
			_, err := f.Fetch(ctx, srv.URL+"/missing")
			var statusErr *HTTPStatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("A timeout is a TransportError", func() {
			slow := New(Options{Timeout: 50 * time.Millisecond})
			_, err := slow.Fetch(ctx, srv.URL+"/slow")
			var transportErr *TransportError
			So(errors.As(err, &transportErr), ShouldBeTrue)
			So(transportErr.URL, ShouldEqual, srv.URL+"/slow")
		})

		Convey("A body cut short is a TransportError, not a truncated page", func() {
			body, err := f.Fetch(ctx, srv.URL+"/cut")
			So(body, ShouldBeEmpty)
			var transportErr *TransportError
			So(errors.As(err, &transportErr), ShouldBeTrue)
		})

		Convey("An unreachable host is a TransportError", func() {
			_, err := f.Fetch(ctx, "http://127.0.0.1:1/")
			var transportErr *TransportError
			So(errors.As(err, &transportErr), ShouldBeTrue)
		})

		Convey("A malformed URL is a TransportError", func() {
			_, err := f.Fetch(ctx, "http://[::1")
			var transportErr *TransportError
			So(errors.As(err, &transportErr), ShouldBeTrue)
		})
	})
}
