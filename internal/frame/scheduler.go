package frame

// Handle identifies a requested frame callback. The zero Handle is never
// issued, so it can be used as "nothing scheduled".
type Handle uint64

// Scheduler is a cooperative per-frame callback queue. The host calls Tick
// once per displayed frame; every callback requested before that Tick runs
// exactly once, in request order. Callbacks requested from inside a callback
// wait for the next Tick, which is what keeps a self-rescheduling loop to one
// step per frame.
//
// Scheduler is not safe for concurrent use: it lives on the render goroutine
// (ebiten's Update, or the bubbletea event loop).
type Scheduler struct {
	next    Handle
	pending []entry
	due     []entry // callbacks of the Tick in progress
}

type entry struct {
	h  Handle
	fn func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Request queues fn for the next Tick.
func (s *Scheduler) Request(fn func()) Handle {
	s.next++
	s.pending = append(s.pending, entry{h: s.next, fn: fn})
	return s.next
}

// Cancel drops a queued callback. A callback cancelled by an earlier callback
// of the same Tick does not run. Unknown, already-run and zero handles are
// ignored.
func (s *Scheduler) Cancel(h Handle) {
	if h == 0 {
		return
	}
	for i, e := range s.pending {
		if e.h == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	for i := range s.due {
		if s.due[i].h == h {
			s.due[i].fn = nil
			return
		}
	}
}

// Tick runs the callbacks that were queued when it was called and returns how
// many ran.
func (s *Scheduler) Tick() int {
	if len(s.pending) == 0 {
		return 0
	}
	s.due = s.pending
	s.pending = nil
	ran := 0
	for i := range s.due {
		fn := s.due[i].fn
		if fn == nil {
			continue
		}
		s.due[i].fn = nil
		fn()
		ran++
	}
	s.due = nil
	return ran
}

// Pending reports how many callbacks wait for the next Tick.
func (s *Scheduler) Pending() int { return len(s.pending) }
