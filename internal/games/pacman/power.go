package pacman

import "time"

// PowerTimer counts power mode down in fixed steps on a Scheduler.
type PowerTimer struct {
	sched     *Scheduler
	duration  time.Duration
	step      time.Duration
	warning   time.Duration
	remaining time.Duration
	token     Token
	onExpire  func()
}

// NewPowerTimer creates an idle timer. onExpire runs when the countdown
// reaches zero.
func NewPowerTimer(sched *Scheduler, duration, step, warning time.Duration, onExpire func()) *PowerTimer {
	return &PowerTimer{
		sched:    sched,
		duration: duration,
		step:     step,
		warning:  warning,
		onExpire: onExpire,
	}
}

// Start cancels any running countdown and begins a new one at now.
func (p *PowerTimer) Start(now time.Time) {
	p.sched.Cancel(p.token)
	p.remaining = p.duration
	p.token = p.sched.After(now, p.step, p.countdown)
}

func (p *PowerTimer) countdown(at time.Time) {
	p.token = 0
	p.remaining -= p.step
	if p.remaining <= 0 {
		p.remaining = 0
		if p.onExpire != nil {
			p.onExpire()
		}
		return
	}
	p.token = p.sched.After(at, p.step, p.countdown)
}

// Stop cancels the countdown and zeroes the remaining time.
func (p *PowerTimer) Stop() {
	p.sched.Cancel(p.token)
	p.token = 0
	p.remaining = 0
}

// Remaining returns the time left, zero when inactive.
func (p *PowerTimer) Remaining() time.Duration {
	return p.remaining
}

// Active reports whether power mode is running.
func (p *PowerTimer) Active() bool {
	return p.remaining > 0
}

// Warning reports whether power mode is about to run out.
func (p *PowerTimer) Warning() bool {
	return p.remaining > 0 && p.remaining < p.warning
}
