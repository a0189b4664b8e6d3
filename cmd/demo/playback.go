package main

// Playback turns frame deltas into the elapsed time handed to the
// controller, so the demo can pause, restart and fast-forward the cycle
// without touching the controller's own clock.
type Playback struct {
	Active bool
	Speed  float64 // multiplier on real time

	elapsed float64
}

const (
	minSpeed = 0.25
	maxSpeed = 512
)

func NewPlayback() *Playback {
	return &Playback{Active: true, Speed: 1}
}

// Advance moves playback forward by dt real seconds and returns the
// elapsed and delta seconds for this frame. A paused playback reports a
// zero delta, which leaves the interpolators untouched.
func (p *Playback) Advance(dt float64) (elapsed, delta float64) {
	if !p.Active || dt <= 0 {
		return p.elapsed, 0
	}
	p.elapsed += dt * p.Speed
	return p.elapsed, dt
}

func (p *Playback) Toggle() { p.Active = !p.Active }

func (p *Playback) Restart() { p.elapsed = 0 }

// Faster and Slower double or halve the speed within limits.
func (p *Playback) Faster() {
	p.Speed *= 2
	if p.Speed > maxSpeed {
		p.Speed = maxSpeed
	}
}

func (p *Playback) Slower() {
	p.Speed /= 2
	if p.Speed < minSpeed {
		p.Speed = minSpeed
	}
}

func (p *Playback) Elapsed() float64 { return p.elapsed }
