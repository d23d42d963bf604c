package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/melodeck/melodeck/filesystem"
	"github.com/melodeck/melodeck/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPrune(t *testing.T) {
	Convey("Given a logs directory with old and new files", t, func() {
		dir := "/logs"
		now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
		for _, name := range []string{"2026-03-10.log", "2026-03-04.log", "2026-02-01.log", "notes.txt", "broken.log"} {
			lo.Must0(filesystem.API().WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		exists := func(name string) bool {
			return lo.Must(filesystem.API().Exists(filepath.Join(dir, name)))
		}

		Convey("Files older than the window are removed", func() {
			prune(dir, now, 7)
			So(exists("2026-03-10.log"), ShouldBeTrue)
			So(exists("2026-03-04.log"), ShouldBeTrue)
			So(exists("2026-02-01.log"), ShouldBeFalse)
			So(exists("notes.txt"), ShouldBeTrue)
			So(exists("broken.log"), ShouldBeTrue)
		})

		Convey("A zero window keeps everything", func() {
			prune(dir, now, 0)
			So(exists("2026-02-01.log"), ShouldBeTrue)
		})
	})
}

func TestSetup(t *testing.T) {
	Convey("Setup", t, func() {
		Convey("Without logs.write nothing is created", func() {
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)
			Info("discarded")
		})

		Convey("With logs.write today's file receives entries", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "debug")
			defer viper.Set(key.LogsWrite, false)

			t.Setenv("MELODECK_CONFIG_PATH", "/config")
			So(Setup(), ShouldBeNil)
			Debugf("hello %s", "log")

			path := filepath.Join("/config", "logs", time.Now().Format(fileLayout)+fileExt)
			data := lo.Must(filesystem.API().ReadFile(path))
			So(string(data), ShouldContainSubstring, "hello log")
		})
	})
}
