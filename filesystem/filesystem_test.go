package filesystem

import (
	"os"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestReadOptional(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()
		lo.Must0(API().WriteFile("/song.lrc", []byte("[00:01]hi"), 0o644))

		Convey("An existing file is read", func() {
			data, ok, err := ReadOptional("/song.lrc")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(string(data), ShouldEqual, "[00:01]hi")
		})

		Convey("A missing file is not an error", func() {
			data, ok, err := ReadOptional("/missing.lrc")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
			So(data, ShouldBeNil)
		})

		Convey("The gache adapter writes through the backend", func() {
			gfs := GacheFs{}
			So(gfs.MkdirAll("/cache", 0o755), ShouldBeNil)
			file, err := gfs.OpenFile("/cache/x.json", os.O_WRONLY|os.O_CREATE, 0o644)
			So(err, ShouldBeNil)
			_, _ = file.Write([]byte("{}"))
			So(file.Close(), ShouldBeNil)
			So(lo.Must(API().Exists("/cache/x.json")), ShouldBeTrue)
		})
	})
}
