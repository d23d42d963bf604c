package playback

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDispatcher(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		got := make(chan Event, 8)
		d := NewDispatcher(func(e Event) { got <- e }, 4)

		Convey("Events arrive in order", func() {
			So(d.Emit(Event{Kind: Play}), ShouldBeTrue)
			So(d.Emit(Event{Kind: Pause}), ShouldBeTrue)
			So((<-got).Kind, ShouldEqual, Play)
			So((<-got).Kind, ShouldEqual, Pause)
			d.Close()
		})

		Convey("Nothing is queued after Close", func() {
			d.Close()
			d.Close()
			So(d.Closed(), ShouldBeTrue)
			So(d.Emit(Event{Kind: Play}), ShouldBeFalse)

			select {
			case <-got:
				So("unexpected event", ShouldBeEmpty)
			case <-time.After(20 * time.Millisecond):
			}
		})
	})

	Convey("A full queue drops instead of blocking", t, func() {
		release := make(chan struct{})
		d := NewDispatcher(func(Event) { <-release }, 1)
		defer close(release)
		defer d.Close()

		dropped := false
		for range 10 {
			if !d.Emit(Event{Kind: TimeUpdate}) {
				dropped = true
			}
		}
		So(dropped, ShouldBeTrue)
	})
}
