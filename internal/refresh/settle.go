package refresh

import (
	"math"
	"time"

	"k8s.io/utils/clock"
)

// SettleDuration is how long the content takes to reach its resting offset.
const SettleDuration = 300 * time.Millisecond

// Settler interpolates an offset between two values over a fixed duration.
// It does not run on its own: the owner polls Compute once per frame.
type Settler struct {
	clock    clock.PassiveClock
	start    time.Time
	duration time.Duration
	startY   int
	finalY   int
	deltaY   int
	currY    int
	finished bool
}

// NewSettler returns a finished settler reading time from c.
func NewSettler(c clock.PassiveClock) *Settler {
	return &Settler{clock: c, finished: true}
}

// Start begins moving from startY by dy over d. A running animation is
// replaced.
func (s *Settler) Start(startY, dy int, d time.Duration) {
	s.start = s.clock.Now()
	s.duration = d
	s.startY = startY
	s.deltaY = dy
	s.finalY = startY + dy
	s.currY = startY
	s.finished = false
}

// Compute advances the animation to the current time. It returns false once
// the animation has finished and the final value has already been reported.
func (s *Settler) Compute() bool {
	if s.finished {
		return false
	}
	elapsed := s.clock.Since(s.start)
	if elapsed < s.duration {
		t := float64(elapsed) / float64(s.duration)
		s.currY = s.startY + int(math.Round(easeInOut(t)*float64(s.deltaY)))
		return true
	}
	s.currY = s.finalY
	s.finished = true
	return true
}

// Abort stops the animation at its final value.
func (s *Settler) Abort() {
	s.currY = s.finalY
	s.finished = true
}

func (s *Settler) Finished() bool { return s.finished }

func (s *Settler) CurrY() int { return s.currY }

func (s *Settler) FinalY() int { return s.finalY }

func easeInOut(t float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}
