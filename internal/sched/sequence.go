package sched

// Step is one stage of a Sequence. It reports whether the stage is complete.
type Step interface {
	advance(dt float64) bool
}

// Sequence runs its steps in order, continuing into the next step in the
// same tick whenever a step completes, until a step suspends.
type Sequence struct {
	steps []Step
	pos   int
}

// Seq builds a sequence task.
func Seq(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Step implements Task.
func (q *Sequence) Step(dt float64) bool {
	for q.pos < len(q.steps) {
		if !q.steps[q.pos].advance(dt) {
			return false
		}
		q.pos++
		// Time was consumed by the step that just finished.
		dt = 0
	}
	return true
}

// Done reports whether every step has completed.
func (q *Sequence) Done() bool {
	return q.pos >= len(q.steps)
}

type doStep struct {
	fn func()
}

func (s doStep) advance(float64) bool {
	s.fn()
	return true
}

// Do runs fn once and continues immediately.
func Do(fn func()) Step {
	return doStep{fn: fn}
}

type waitStep struct {
	d       float64
	elapsed float64
}

func (s *waitStep) advance(dt float64) bool {
	s.elapsed += dt
	return s.elapsed >= s.d-timeEps
}

// Wait suspends for d seconds of simulated time. Leftover time in the tick
// it finishes on is not carried over.
func Wait(d float64) Step {
	return &waitStep{d: d}
}

type nextTickStep struct {
	armed bool
}

func (s *nextTickStep) advance(float64) bool {
	if s.armed {
		return true
	}
	s.armed = true
	return false
}

// NextTick suspends until the following tick.
func NextTick() Step {
	return &nextTickStep{}
}

type untilStep struct {
	pred func() bool
}

func (s untilStep) advance(float64) bool {
	return s.pred()
}

// Until suspends until pred returns true, checked once per tick.
func Until(pred func() bool) Step {
	return untilStep{pred: pred}
}

type forStep struct {
	d       float64
	elapsed float64
	fn      func(dt float64)
}

func (s *forStep) advance(dt float64) bool {
	slice := dt
	if remaining := s.d - s.elapsed; slice > remaining {
		slice = remaining
	}
	if slice > 0 {
		s.fn(slice)
	}
	s.elapsed += slice
	return s.elapsed >= s.d-timeEps
}

// For calls fn every tick with that tick's share of d seconds, clipped so the
// total time handed to fn is exactly d, then continues.
func For(d float64, fn func(dt float64)) Step {
	return &forStep{d: d, fn: fn}
}
