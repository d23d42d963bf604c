package recent

import (
	"testing"

	"github.com/melodeck/melodeck/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRecent(t *testing.T) {
	Convey("Given remembered sources", t, func() {
		So(Clear(), ShouldBeNil)
		So(Remember("/music/Morning.mp3", 1), ShouldBeNil)
		So(Remember("/music/evening.wav", 1), ShouldBeNil)
		So(Remember("/music/evening.wav", 5), ShouldBeNil)
		So(Remember("   ", 3), ShouldBeNil)

		Convey("Suggestions are ranked", func() {
			So(SuggestMany("music"), ShouldResemble, []string{"/music/evening.wav", "/music/Morning.mp3"})
		})

		Convey("Matching is fuzzy and ignores case", func() {
			So(SuggestMany("mrnng"), ShouldResemble, []string{"/music/Morning.mp3"})
			So(Suggest("MORNING").MustGet(), ShouldEqual, "/music/Morning.mp3")
		})

		Convey("Nothing matches nothing", func() {
			So(Suggest("jazz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Clear forgets everything", func() {
			So(Clear(), ShouldBeNil)
			So(SuggestMany(""), ShouldBeEmpty)
		})
	})
}
