package sched

import (
	"testing"
)

func TestStartRunsUntilFirstWait(t *testing.T) {
	s := New()
	var log []string

	h := s.Start(Seq(
		Do(func() { log = append(log, "a") }),
		Wait(0.5),
		Do(func() { log = append(log, "b") }),
	))

	if len(log) != 1 || log[0] != "a" {
		t.Fatalf("after Start log = %v, expected [a]", log)
	}
	if !h.Running() {
		t.Fatal("task should be suspended at the wait")
	}

	s.Tick(0.25)
	if len(log) != 1 {
		t.Errorf("wait finished early: %v", log)
	}

	s.Tick(0.25)
	if len(log) != 2 || log[1] != "b" {
		t.Errorf("after 0.5s log = %v, expected [a b]", log)
	}
	if h.Running() {
		t.Error("task should be finished")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestInstantTaskNeverQueued(t *testing.T) {
	s := New()
	ran := false
	h := s.Start(Seq(Do(func() { ran = true })))
	if !ran || h.Running() || s.Len() != 0 {
		t.Errorf("instant task: ran=%v running=%v len=%d", ran, h.Running(), s.Len())
	}
}

func TestStopCancelsSilently(t *testing.T) {
	s := New()
	fired := false
	h := s.Start(Seq(Wait(0.1), Do(func() { fired = true })))

	s.Stop(h)
	s.Tick(1)

	if fired {
		t.Error("stopped task should not resume")
	}
	if h.Running() {
		t.Error("stopped handle should not report running")
	}
	s.Stop(nil) // no-op
}

func TestStopAllDuringTick(t *testing.T) {
	s := New()
	count := 0
	s.Start(TaskFunc(func(float64) bool {
		count++
		s.StopAll()
		return false
	}))
	s.Start(TaskFunc(func(float64) bool {
		count++
		return false
	}))

	count = 0
	s.Tick(0.1)
	s.Tick(0.1)

	if count != 1 {
		t.Errorf("expected only the first task to run once after StopAll, count=%d", count)
	}
}

func TestNextTick(t *testing.T) {
	s := New()
	done := false
	s.Start(Seq(NextTick(), Do(func() { done = true })))
	if done {
		t.Fatal("NextTick should suspend on start")
	}
	s.Tick(0)
	if !done {
		t.Error("NextTick should resume on the following tick")
	}
}

func TestUntil(t *testing.T) {
	s := New()
	gate := false
	done := false
	s.Start(Seq(Until(func() bool { return gate }), Do(func() { done = true })))

	s.Tick(1)
	if done {
		t.Fatal("Until resumed before predicate held")
	}
	gate = true
	s.Tick(1)
	if !done {
		t.Error("Until should resume once predicate holds")
	}
}

func TestForHandsOutExactDuration(t *testing.T) {
	s := New()
	total := 0.0
	calls := 0
	h := s.Start(Seq(For(0.5, func(dt float64) {
		total += dt
		calls++
	})))

	for i := 0; i < 4; i++ {
		s.Tick(0.15)
	}

	if h.Running() {
		t.Fatal("For should finish once 0.5s elapsed")
	}
	if total < 0.5-1e-9 || total > 0.5+1e-9 {
		t.Errorf("total time = %f, expected 0.5", total)
	}
	if calls != 4 {
		t.Errorf("calls = %d, expected 4 (last slice clipped)", calls)
	}
}

func TestEveryIsFrameRateIndependent(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
		n    int
	}{
		{"60 fps", 1.0 / 60, 60},
		{"10 fps", 0.1, 10},
		{"one long frame", 1.0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			fired := 0
			s.Every(0.2, func() { fired++ })
			for i := 0; i < tc.n; i++ {
				s.Tick(tc.dt)
			}
			if fired != 5 {
				t.Errorf("fired %d times in 1s, expected 5", fired)
			}
		})
	}
}

func TestPausedSchedulerFreezesTime(t *testing.T) {
	s := New()
	done := false
	s.Start(Seq(Wait(0.1), Do(func() { done = true })))

	s.SetPaused(true)
	s.Tick(1)
	if done {
		t.Fatal("paused scheduler advanced a task")
	}
	s.SetPaused(false)
	s.Tick(0.1)
	if !done {
		t.Error("task should resume after unpause")
	}
}
