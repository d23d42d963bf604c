package audio

import "fmt"

// pcm streams interleaved integer samples held in memory.
type pcm struct {
	data     []int
	channels int
	scale    float64
	pos      int
}

func newPCM(data []int, channels, bitDepth int) *pcm {
	return &pcm{
		data:     data,
		channels: channels,
		scale:    float64(int(1) << (bitDepth - 1)),
	}
}

func (p *pcm) Stream(samples [][2]float64) (n int, ok bool) {
	length := p.Len()
	for n < len(samples) && p.pos < length {
		i := p.pos * p.channels
		left := float64(p.data[i]) / p.scale
		right := left
		if p.channels > 1 {
			right = float64(p.data[i+1]) / p.scale
		}
		samples[n] = [2]float64{left, right}
		n++
		p.pos++
	}
	return n, n > 0
}

func (p *pcm) Err() error { return nil }

func (p *pcm) Len() int {
	return len(p.data) / p.channels
}

func (p *pcm) Position() int {
	return p.pos
}

func (p *pcm) Seek(position int) error {
	if position < 0 || position > p.Len() {
		return fmt.Errorf("seek position %d out of range [0, %d]", position, p.Len())
	}
	p.pos = position
	return nil
}

func (p *pcm) Close() error { return nil }
