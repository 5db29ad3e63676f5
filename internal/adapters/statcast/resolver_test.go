package statcast_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/mound/internal/adapters/statcast"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPResolverResolveNames(t *testing.T) {
	ctx := context.Background()

	Convey("Given a Stats API endpoint", t, func() {
		var gotIDs string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotIDs = r.URL.Query().Get("personIds")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"people":[
				{"id":543037,"fullName":"Gerrit Cole"},
				{"id":660271,"fullName":"Shohei Ohtani"}
			]}`))
		}))
		defer srv.Close()

		resolver := statcast.NewHTTPResolver(statcast.WithResolverBaseURL(srv.URL))

		Convey("When resolving known and unknown ids", func() {
			names, err := resolver.ResolveNames(ctx, []int64{543037, 660271, 999999})

			Convey("Then all ids go out in one batched request", func() {
				So(err, ShouldBeNil)
				So(gotIDs, ShouldEqual, "543037,660271,999999")
			})

			Convey("Then known ids map to names", func() {
				So(err, ShouldBeNil)
				So(names[543037], ShouldEqual, "Gerrit Cole")
				So(names[660271], ShouldEqual, "Shohei Ohtani")
			})

			Convey("Then unknown ids are simply absent", func() {
				So(err, ShouldBeNil)
				_, ok := names[999999]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When resolving no ids", func() {
			names, err := resolver.ResolveNames(ctx, nil)

			Convey("Then nothing is requested", func() {
				So(err, ShouldBeNil)
				So(names, ShouldBeEmpty)
				So(gotIDs, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a failing Stats API", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		resolver := statcast.NewHTTPResolver(statcast.WithResolverBaseURL(srv.URL))

		Convey("When resolving", func() {
			_, err := resolver.ResolveNames(ctx, []int64{543037})

			Convey("Then the error wraps ErrUpstream", func() {
				So(err, ShouldWrap, statcast.ErrUpstream)
			})
		})
	})
}
