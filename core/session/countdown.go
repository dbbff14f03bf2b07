package session

import (
	"sync"
	"time"
)

var tickInterval = time.Second // mockable

// Countdown is the OTP resend cool-down: a purely client-side UX throttle,
// decremented on a local timer, independent of server state. The hosting
// view owns it: started on entry, re-armed after a resend, and stopped on
// exit so no timer outlives the view.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	stop      chan struct{}
}

func NewCountdown() *Countdown {
	return &Countdown{}
}

// Start arms (or re-arms) the countdown at the given number of seconds.
func (c *Countdown) Start(seconds int) {
	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
	}
	c.remaining = seconds
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	if seconds <= 0 {
		return
	}
	go c.run(stop)
}

func (c *Countdown) run(stop chan struct{}) {
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			c.mu.Lock()
			if c.stop != stop { // re-armed under our feet
				c.mu.Unlock()
				return
			}
			c.remaining--
			done := c.remaining <= 0
			if done {
				c.remaining = 0
				c.stop = nil
			}
			c.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Remaining reports the seconds left; 0 means resend is allowed again.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Active() bool {
	return c.Remaining() > 0
}

// Stop tears the timer down; safe to call any number of times.
func (c *Countdown) Stop() {
	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.remaining = 0
	c.mu.Unlock()
}
