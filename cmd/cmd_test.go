package cmd

import (
	"testing"

	"github.com/melodeck/melodeck/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestReadLyrics(t *testing.T) {
	Convey("Given a track with a sibling lrc file", t, func() {
		lo.Must0(filesystem.API().MkdirAll("/music", 0o755))
		lo.Must0(filesystem.API().WriteFile("/music/song.lrc", []byte("[00:01.00]hello"), 0o644))
		lo.Must0(filesystem.API().WriteFile("/music/other.lrc", []byte("[00:02.00]other"), 0o644))

		Convey("The sibling is used by default", func() {
			lyrics, err := readLyrics("", "/music/song.mp3")
			So(err, ShouldBeNil)
			So(lyrics, ShouldEqual, "[00:01.00]hello")
		})

		Convey("An explicit file wins", func() {
			lyrics, err := readLyrics("/music/other.lrc", "/music/song.mp3")
			So(err, ShouldBeNil)
			So(lyrics, ShouldEqual, "[00:02.00]other")
		})

		Convey("A track without a sibling has no lyrics", func() {
			lyrics, err := readLyrics("", "/music/none.wav")
			So(err, ShouldBeNil)
			So(lyrics, ShouldBeEmpty)
		})

		Convey("Remote tracks have no sidecar lookup", func() {
			lyrics, err := readLyrics("", "https://example.com/song.mp3")
			So(err, ShouldBeNil)
			So(lyrics, ShouldBeEmpty)
		})

		Convey("A missing explicit file fails", func() {
			_, err := readLyrics("/music/missing.lrc", "/music/song.mp3")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseValue(t *testing.T) {
	Convey("parseValue follows the default's type", t, func() {
		So(lo.Must(parseValue("", []string{"mpv"})), ShouldEqual, "mpv")
		So(lo.Must(parseValue(0, []string{"30"})), ShouldEqual, 30)
		So(lo.Must(parseValue(0.0, []string{"0.75"})), ShouldEqual, 0.75)
		So(lo.Must(parseValue(false, []string{"true"})), ShouldEqual, true)
		So(lo.Must(parseValue([]string{}, []string{"a", "b"})), ShouldResemble, []string{"a", "b"})

		_, err := parseValue(0, []string{"x"})
		So(err, ShouldNotBeNil)
		_, err = parseValue(0.0, []string{"loud"})
		So(err, ShouldNotBeNil)
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Unknown keys suggest the closest one", t, func() {
		So(errUnknownKey("player.backen").Error(), ShouldContainSubstring, "player.backend")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("capitalize", t, func() {
		So(capitalize("cache directory"), ShouldEqual, "Cache directory")
		So(capitalize(""), ShouldBeEmpty)
	})
}
