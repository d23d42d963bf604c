package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMeterRows(t *testing.T) {
	Convey("MeterRows", t, func() {
		Convey("The floor and the top take the end colors", func() {
			rows := MeterRows(4)
			So(rows, ShouldHaveLength, 4)
			So(rows[0].GetForeground(), ShouldEqual, MeterLow)
			So(rows[3].GetForeground(), ShouldEqual, MeterHigh)
		})

		Convey("A single row uses the accent", func() {
			rows := MeterRows(1)
			So(rows[0].GetForeground(), ShouldEqual, AccentColor)
		})

		Convey("Zero rows are empty", func() {
			So(MeterRows(0), ShouldBeEmpty)
		})
	})

	Convey("Fg keeps the text", t, func() {
		So(lipgloss.Width(Fg(HiRed)("abc")), ShouldEqual, 3)
	})
}
