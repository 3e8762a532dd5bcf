// Package sched provides cooperative, tick-driven tasks: the resumable
// "coroutines" the simulation uses for multi-step actions (rolls, reloads,
// enemy attacks, text typing) and fixed-timestep repeating callbacks.
//
// Nothing here spawns goroutines. A task only runs inside Scheduler.Tick (or
// Start, which runs it up to its first wait point), so all mutation happens
// within the single logical simulation tick.
package sched

// timeEps absorbs float accumulation error when comparing elapsed time
// against a duration.
const timeEps = 1e-9

// Task is a resumable unit of work advanced once per tick.
type Task interface {
	// Step advances the task by dt seconds and reports whether it finished.
	Step(dt float64) bool
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc func(dt float64) bool

// Step calls f(dt).
func (f TaskFunc) Step(dt float64) bool {
	return f(dt)
}

// Handle identifies a started task.
type Handle struct {
	task      Task
	done      bool
	cancelled bool
}

// Running reports whether the task has neither finished nor been stopped.
// A nil handle is never running.
func (h *Handle) Running() bool {
	return h != nil && !h.done && !h.cancelled
}

// Scheduler advances started tasks in start order.
type Scheduler struct {
	tasks  []*Handle
	paused bool
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Start begins a task and runs it up to its first suspension point,
// matching how an engine coroutine executes synchronously until it yields.
func (s *Scheduler) Start(t Task) *Handle {
	h := &Handle{task: t}
	if t.Step(0) {
		h.done = true
		return h
	}
	s.tasks = append(s.tasks, h)
	return h
}

// Stop cancels a task immediately. Stopping a finished or nil handle is a no-op.
func (s *Scheduler) Stop(h *Handle) {
	if h == nil {
		return
	}
	h.cancelled = true
}

// StopAll cancels every running task.
func (s *Scheduler) StopAll() {
	for _, h := range s.tasks {
		h.cancelled = true
	}
}

// SetPaused freezes or resumes all tasks. Paused tasks receive no time.
func (s *Scheduler) SetPaused(p bool) {
	s.paused = p
}

// Paused reports whether the scheduler is frozen.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, h := range s.tasks {
		if h.Running() {
			n++
		}
	}
	return n
}

// Tick advances every running task by dt. Tasks started during the tick
// receive their first time slice on the next tick.
func (s *Scheduler) Tick(dt float64) {
	if s.paused {
		return
	}

	n := len(s.tasks)
	for i := 0; i < n; i++ {
		h := s.tasks[i]
		if !h.Running() {
			continue
		}
		if h.task.Step(dt) {
			h.done = true
		}
	}

	live := s.tasks[:0]
	for _, h := range s.tasks {
		if h.Running() {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Every starts a repeating callback fired once per interval of accumulated
// time, independent of the frame rate: a long frame fires it several times.
// The first call happens after one full interval.
func (s *Scheduler) Every(interval float64, fn func()) *Handle {
	return s.Start(&repeating{interval: interval, fn: fn})
}

type repeating struct {
	interval float64
	acc      float64
	fn       func()
}

func (r *repeating) Step(dt float64) bool {
	if r.interval <= 0 {
		return true
	}
	r.acc += dt
	for r.acc >= r.interval-timeEps {
		r.acc -= r.interval
		r.fn()
	}
	return false
}
