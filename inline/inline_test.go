package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const song = `[ar:Someone]
[00:01.00]first
[00:05.50]
[01:10.25]third
`

func TestRun(t *testing.T) {
	Convey("Given lyrics", t, func() {
		var buf bytes.Buffer
		options := &Options{Out: &buf, Source: "song.lrc", Lyrics: song, Placeholder: "♪"}

		Convey("Every line is listed with its time", func() {
			So(Run(options), ShouldBeNil)
			So(buf.String(), ShouldEqual, "[00:01] first\n[00:05] \n[01:10] third\n")
		})

		Convey("The active line is printed at an offset", func() {
			options.At = mo.Some(2.0)
			So(Run(options), ShouldBeNil)
			So(buf.String(), ShouldEqual, "first\n")
		})

		Convey("Blank lines show the placeholder", func() {
			options.At = mo.Some(6.0)
			So(Run(options), ShouldBeNil)
			So(buf.String(), ShouldEqual, "♪\n")
		})

		Convey("JSON carries the lines and the active line", func() {
			options.Json = true
			options.At = mo.Some(0.5)
			So(Run(options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Source, ShouldEqual, "song.lrc")
			So(*output.At, ShouldEqual, 0.5)
			So(output.Active.Index, ShouldEqual, -1)
			So(output.Active.Display, ShouldEqual, "♪")
			So(output.Lines, ShouldHaveLength, 3)
			So(output.Lines[2].Time, ShouldEqual, 70.25)
		})
	})

	Convey("Empty lyrics encode an empty list", t, func() {
		var buf bytes.Buffer
		So(Run(&Options{Out: &buf, Json: true}), ShouldBeNil)
		So(buf.String(), ShouldEqual, `{"lines":[]}`+"\n")
	})
}

func TestParseAt(t *testing.T) {
	Convey("ParseAt", t, func() {
		for input, want := range map[string]float64{
			"83.5":    83.5,
			"1:23.5":  83.5,
			"1:02:03": 3723,
			" 0 ":     0,
		} {
			got, err := ParseAt(input)
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, want)
		}

		for _, input := range []string{"", "a", "-1", "1:2:3:4", "1.5:00"} {
			_, err := ParseAt(input)
			So(err, ShouldNotBeNil)
		}
	})
}
