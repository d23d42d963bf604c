package visual

import (
	"github.com/melodeck/melodeck/log"
)

// SpectralSource yields spectral frames from the audio graph of the current media.
// Connect and Disconnect must tolerate repeated calls.
type SpectralSource interface {
	// FrameSize is the fixed number of bins in every frame.
	FrameSize() int
	Connect() error
	// ReadFrame fills frame with the most recent magnitudes.
	ReadFrame(frame Frame)
	Disconnect()
}

// Scheduler runs fn at the next rendering opportunity.
// The returned cancel func prevents fn from running if it has not yet; calling it twice is a no-op.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// Pipeline samples a SpectralSource once per frame while playing and feeds a PeakMeter.
// It is not safe for concurrent use; every method and the scheduled tick run on one loop.
type Pipeline struct {
	layout    Layout
	meter     *PeakMeter
	scheduler Scheduler

	source    SpectralSource
	connected bool
	frame     Frame

	width int
	step  int

	running bool
	cancel  func()
	onFrame func([]Bar)
}

// NewPipeline creates a stopped pipeline with no source attached.
// layout.FrameSize is replaced by the attached source's frame size.
func NewPipeline(layout Layout, decay int, scheduler Scheduler) *Pipeline {
	return &Pipeline{
		layout:    layout,
		meter:     NewPeakMeter(decay),
		scheduler: scheduler,
	}
}

// OnFrame registers fn to receive the bars after every sampled frame.
func (p *Pipeline) OnFrame(fn func([]Bar)) {
	p.onFrame = fn
}

// Attach swaps the sampled source. The previous source is disconnected first;
// the new one is connected right away only when the pipeline is running.
func (p *Pipeline) Attach(source SpectralSource) error {
	p.disconnect()
	p.source = source
	p.frame = nil

	if source != nil {
		p.layout.FrameSize = source.FrameSize()
		p.frame = make(Frame, p.layout.FrameSize)
		p.relayout()
	}

	if p.running {
		return p.connect()
	}
	return nil
}

// Resize applies a new output width. Bars are reallocated and zeroed only when their count changes.
func (p *Pipeline) Resize(width int) {
	p.width = width
	p.relayout()
}

// SetPlaying starts sampling on true and stops it on false.
// Stopping cancels the pending frame and disconnects the source immediately.
func (p *Pipeline) SetPlaying(playing bool) error {
	if playing {
		return p.start()
	}
	p.stop()
	return nil
}

// Running reports whether frames are being sampled.
func (p *Pipeline) Running() bool {
	return p.running
}

// Bars returns the current peak-meter bars.
func (p *Pipeline) Bars() []Bar {
	return p.meter.Bars()
}

// Close stops sampling and detaches the source.
func (p *Pipeline) Close() {
	p.stop()
	p.source = nil
}

func (p *Pipeline) start() error {
	if p.running {
		return nil
	}

	p.running = true
	if err := p.connect(); err != nil {
		p.running = false
		return err
	}

	p.schedule()
	return nil
}

func (p *Pipeline) stop() {
	p.running = false
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.disconnect()
}

func (p *Pipeline) connect() error {
	if p.source == nil || p.connected {
		return nil
	}

	if err := p.source.Connect(); err != nil {
		log.Errorf("connect spectral source: %v", err)
		return err
	}
	p.connected = true
	return nil
}

func (p *Pipeline) disconnect() {
	if p.source == nil || !p.connected {
		return
	}

	p.source.Disconnect()
	p.connected = false
}

func (p *Pipeline) relayout() {
	var count int
	p.step, count = p.layout.Buckets(p.width)
	if p.meter.Resize(count) {
		log.Debugf("peak meter resized to %d bars (step %d)", count, p.step)
	}
}

func (p *Pipeline) schedule() {
	p.cancel = p.scheduler.RequestFrame(p.tick)
}

func (p *Pipeline) tick() {
	if !p.running {
		return
	}

	if p.connected && p.meter.Len() > 0 {
		p.source.ReadFrame(p.frame)
		p.meter.Update(Bucketize(p.frame, p.step, p.meter.Len()))
		if p.onFrame != nil {
			p.onFrame(p.meter.Bars())
		}
	}

	p.schedule()
}
