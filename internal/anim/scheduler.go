package anim

// tween is one in-flight animation. delay-only entries have no update.
type tween struct {
	id       uint64
	elapsed  float64
	duration float64
	ease     Ease
	update   func(p float64)
	done     func()
}

// epsilon absorbs accumulated float error so a tween lasting n ticks
// completes on tick n.
const epsilon = 1e-9

// Handle identifies a scheduled tween or timer.
type Handle uint64

// Scheduler advances every tween by the same tick delta.
// It is single-threaded: callers drive it from the game's Step.
type Scheduler struct {
	tweens []*tween
	nextID uint64
	now    float64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Tween schedules an animation lasting duration seconds. update receives the
// eased progress on every advance (and 1 on completion); done fires exactly
// once when the duration elapses. A non-positive duration completes on the
// next Advance.
func (s *Scheduler) Tween(duration float64, ease Ease, update func(p float64), done func()) Handle {
	if ease == nil {
		ease = Linear
	}
	s.nextID++
	s.tweens = append(s.tweens, &tween{
		id:       s.nextID,
		duration: duration,
		ease:     ease,
		update:   update,
		done:     done,
	})
	return Handle(s.nextID)
}

// After schedules fn to run once delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) Handle {
	return s.Tween(delay, Linear, nil, fn)
}

// Cancel drops a pending tween without firing its completion.
// Returns false if the handle is unknown or already finished.
func (s *Scheduler) Cancel(h Handle) bool {
	for i, tw := range s.tweens {
		if tw.id == uint64(h) {
			s.tweens = append(s.tweens[:i], s.tweens[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves time forward by dt seconds.
// Progress is applied to every live tween first; completions then fire in
// scheduling order. Tweens added by a completion start on the next Advance.
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	live := s.tweens
	s.tweens = nil

	var finished []*tween
	for _, tw := range live {
		tw.elapsed += dt
		p := 1.0
		if tw.duration > 0 && tw.elapsed < tw.duration-epsilon {
			p = tw.elapsed / tw.duration
		}
		if tw.update != nil {
			tw.update(tw.ease(p))
		}
		if p >= 1 {
			finished = append(finished, tw)
		} else {
			s.tweens = append(s.tweens, tw)
		}
	}

	for _, tw := range finished {
		if tw.done != nil {
			tw.done()
		}
	}
}

// Pending returns the number of tweens and timers still in flight.
func (s *Scheduler) Pending() int {
	return len(s.tweens)
}

// Now returns the total simulated time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Clear drops every pending tween without firing completions.
func (s *Scheduler) Clear() {
	s.tweens = nil
}
