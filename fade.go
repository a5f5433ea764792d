package flatland

// Fade is a fade-in advanced by the fixed tick
type Fade struct {
	Elapsed  float64
	Duration float64
}

func (f *Fade) Reset(duration float64) {
	f.Elapsed = 0
	f.Duration = duration
}

func (f *Fade) Advance(dt float64) {
	if f.Done() {
		return
	}
	f.Elapsed += dt
}

func (f *Fade) Done() bool {
	return f.Elapsed >= f.Duration
}

// Alpha goes from 0 to 1 over Duration
func (f *Fade) Alpha() float64 {
	if f.Duration <= 0 || f.Done() {
		return 1
	}

	return f.Elapsed / f.Duration
}
