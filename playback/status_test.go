package playback

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStrings(t *testing.T) {
	Convey("Statuses and events have readable names", t, func() {
		So(Playing.String(), ShouldEqual, "playing")
		So(Errored.String(), ShouldEqual, "errored")
		So(Status(99).String(), ShouldEqual, "unknown")
		So(LoadedMetadata.String(), ShouldEqual, "loadedmetadata")
		So(EventKind(0).String(), ShouldEqual, "unknown")
	})

	Convey("Tracks print with their artist when known", t, func() {
		So(Track{Name: "Song", Artist: "Band"}.String(), ShouldEqual, "Band - Song")
		So(Track{Name: "Song"}.String(), ShouldEqual, "Song")
	})

	Convey("Progress is a clamped fraction of the duration", t, func() {
		So(State{CurrentTime: 30, Duration: mo.Some(60.0)}.Progress(), ShouldEqual, 0.5)
		So(State{CurrentTime: 30, Duration: mo.None[float64]()}.Progress(), ShouldEqual, 0)
	})
}
