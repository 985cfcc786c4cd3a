package errors

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// runStage simulates one step of a training pipeline. A stage either
// succeeds, returns an error, or panics, and the caller must see the
// same error surface in all three cases.
func runStage(name string, fn func() error) error {
	return SafeExecute(name, fn)
}

func TestPipelineStopsAtPanickingStage(t *testing.T) {
	var executed []string

	stages := []struct {
		name string
		fn   func() error
	}{
		{"loadDataset", func() error { executed = append(executed, "loadDataset"); return nil }},
		{"sweepFeatures", func() error { executed = append(executed, "sweepFeatures"); panic("stats buffer too small") }},
		{"fitLeaves", func() error { executed = append(executed, "fitLeaves"); return nil }},
	}

	var err error
	for _, s := range stages {
		if err = runStage(s.name, s.fn); err != nil {
			break
		}
	}

	if err == nil {
		t.Fatal("expected the sweep stage to fail")
	}
	var pe *PanicError
	if !As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
	if pe.Op != "sweepFeatures" {
		t.Errorf("Op = %q, want sweepFeatures", pe.Op)
	}
	if len(executed) != 2 || executed[1] != "sweepFeatures" {
		t.Errorf("stages after the panic must not run, executed = %v", executed)
	}
}

func TestPanicErrorSurvivesWrapping(t *testing.T) {
	inner := SafeExecute("scoreBuckets", func() error { panic("zero total weight") })
	wrapped := Wrap(inner, "training aborted")

	var pe *PanicError
	if !As(wrapped, &pe) {
		t.Fatal("PanicError must stay reachable through Wrap")
	}
	msg := wrapped.Error()
	for _, want := range []string{"training aborted", "scoreBuckets", "zero total weight"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestRecoverIsolatesWorkerPanics(t *testing.T) {
	const workers = 4
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			func() {
				defer Recover(&errs[w], fmt.Sprintf("worker(%d)", w))
				if w == 2 {
					panic("split index out of range")
				}
			}()
		}(w)
	}
	wg.Wait()

	for w, err := range errs {
		if w == 2 {
			var pe *PanicError
			if !As(err, &pe) {
				t.Fatalf("worker 2: expected *PanicError, got %v", err)
			}
			if pe.Op != "worker(2)" {
				t.Errorf("worker 2: Op = %q", pe.Op)
			}
			continue
		}
		if err != nil {
			t.Errorf("worker %d: expected nil, got %v", w, err)
		}
	}
}

func TestNestedSafeExecuteReportsInnermostOp(t *testing.T) {
	err := SafeExecute("outer", func() error {
		return SafeExecute("inner", func() error { panic("boom") })
	})

	var pe *PanicError
	if !As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
	// The inner SafeExecute converts the panic to an ordinary error, so
	// the outer one passes it through untouched.
	if pe.Op != "inner" {
		t.Errorf("Op = %q, want inner", pe.Op)
	}
}

func TestRecoverThenValidationError(t *testing.T) {
	// A recovered panic and a domain error can share one code path.
	run := func(panics bool) (err error) {
		defer Recover(&err, "checkInput")
		if panics {
			panic("nil dataset")
		}
		return NewValueError("checkInput", "weights must be non-negative")
	}

	if err := run(true); err != nil {
		var pe *PanicError
		if !As(err, &pe) {
			t.Errorf("panic path: expected *PanicError, got %T", err)
		}
	} else {
		t.Error("panic path: expected an error")
	}

	if err := run(false); err != nil {
		var ve *ValueError
		if !As(err, &ve) {
			t.Errorf("error path: expected *ValueError, got %T", err)
		}
	} else {
		t.Error("error path: expected an error")
	}
}

func BenchmarkRecoverOverhead(b *testing.B) {
	work := func() int {
		s := 0
		for i := 0; i < 100; i++ {
			s += i
		}
		return s
	}

	b.Run("direct", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = work()
		}
	})

	b.Run("withRecover", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			func() (err error) {
				defer Recover(&err, "bench")
				_ = work()
				return nil
			}()
		}
	})
}
