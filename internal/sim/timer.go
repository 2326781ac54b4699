package sim

// Timer fires at a fixed interval of simulated time.
type Timer struct {
	Interval float64 // Seconds between fires, <= 0 disables the timer
	acc      float64
}

// NewTimer creates a timer with the given interval in seconds.
func NewTimer(interval float64) Timer {
	return Timer{Interval: interval}
}

// Tick advances the timer and returns how many times it fired.
func (t *Timer) Tick(dt float64) int {
	if t.Interval <= 0 {
		return 0
	}
	t.acc += dt
	n := 0
	for t.acc >= t.Interval {
		t.acc -= t.Interval
		n++
	}
	return n
}

// Reset clears accumulated time.
func (t *Timer) Reset() {
	t.acc = 0
}

// Countdown is a clock that runs down to zero.
type Countdown struct {
	left float64
}

// NewCountdown creates a countdown starting at seconds.
func NewCountdown(seconds float64) Countdown {
	return Countdown{left: seconds}
}

// Tick runs the clock down and reports whether it just reached zero.
func (c *Countdown) Tick(dt float64) bool {
	if c.left <= 0 {
		return false
	}
	c.left -= dt
	if c.left <= 0 {
		c.left = 0
		return true
	}
	return false
}

// Penalize removes seconds from the clock (never below zero).
// Returns true if the penalty emptied the clock.
func (c *Countdown) Penalize(seconds float64) bool {
	if c.left <= 0 || seconds <= 0 {
		return false
	}
	c.left -= seconds
	if c.left <= 0 {
		c.left = 0
		return true
	}
	return false
}

// Extend adds seconds to a running clock. An expired clock stays expired.
func (c *Countdown) Extend(seconds float64) {
	if c.left <= 0 || seconds <= 0 {
		return
	}
	c.left += seconds
}

// Left returns the seconds remaining.
func (c *Countdown) Left() float64 {
	return c.left
}
