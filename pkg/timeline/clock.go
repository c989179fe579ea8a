package timeline

import (
	"math"

	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

// Clock maps export frames to animation time.
type Clock struct {
	Duration  float64 `json:"duration" msgpack:"duration"`   // seconds
	FrameRate float64 `json:"frameRate" msgpack:"frameRate"` // frames per second
}

// ClockOf returns the clock of a render configuration.
func ClockOf(r preset.Render) Clock {
	return Clock{Duration: r.Duration, FrameRate: r.FrameRate}
}

// Frames returns duration*frameRate without truncation. It is the divisor
// of [Clock.CurrentTime].
func (c Clock) Frames() float64 { return c.Duration * c.FrameRate }

// TotalFrames returns the number of frames in an export, truncated toward zero.
func (c Clock) TotalFrames() int {
	n := c.Frames()
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(n)
}

// CurrentTime returns the animation time in seconds at the 1-based frame.
// A clock with no frames always reports 0.
func (c Clock) CurrentTime(frame int) float64 {
	n := c.Frames()
	if c.TotalFrames() == 0 {
		return 0
	}
	return float64(frame-1) * c.Duration / n
}

// Offset returns the seek delay applied to every animation at frame.
func (c Clock) Offset(frame int) float64 {
	return -c.CurrentTime(frame)
}
