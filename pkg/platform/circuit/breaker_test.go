package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// step is one recorded call: true for success, false for failure.
type step struct {
	success     bool
	wantOpen    bool
	wantChange  StateChange
	wantPrimary bool // success: usePrimary, failure: !useFallback
}

func run(t *testing.T, b *Breaker, steps []step) {
	t.Helper()
	for i, st := range steps {
		var primary bool
		var change StateChange
		if st.success {
			primary, change = b.RecordSuccess()
		} else {
			var fallback bool
			fallback, change = b.RecordFailure()
			primary = !fallback
		}
		require.Equal(t, st.wantChange, change, "step %d change", i)
		require.Equal(t, st.wantPrimary, primary, "step %d primary", i)
		require.Equal(t, st.wantOpen, b.IsOpen(), "step %d open", i)
	}
}

var (
	fail   = step{success: false, wantPrimary: true}
	failed = step{success: false, wantOpen: true}
	ok     = step{success: true, wantPrimary: true}
)

func TestNewDefaults(t *testing.T) {
	b := New("audit-kafka")
	assert.Equal(t, "audit-kafka", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, defaultFailureThreshold, b.failureThreshold)
	assert.Equal(t, defaultSuccessThreshold, b.successThreshold)

	b = New("audit-kafka", WithFailureThreshold(0), WithSuccessThreshold(-1))
	assert.Equal(t, defaultFailureThreshold, b.failureThreshold, "non-positive thresholds are ignored")
	assert.Equal(t, defaultSuccessThreshold, b.successThreshold)
}

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		steps []step
	}{
		{
			name: "opens on the threshold failure",
			opts: []Option{WithFailureThreshold(3)},
			steps: []step{
				fail, fail,
				{success: false, wantOpen: true, wantChange: StateChange{Opened: true}},
				failed,
			},
		},
		{
			name: "success clears the failure run",
			opts: []Option{WithFailureThreshold(2)},
			steps: []step{
				fail, ok, fail,
				{success: false, wantOpen: true, wantChange: StateChange{Opened: true}},
			},
		},
		{
			name: "closes after consecutive successes",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{success: false, wantOpen: true, wantChange: StateChange{Opened: true}},
				{success: true, wantOpen: true},
				{success: true, wantPrimary: true, wantChange: StateChange{Closed: true}},
				ok,
			},
		},
		{
			name: "failure while open restarts the success run",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{success: false, wantOpen: true, wantChange: StateChange{Opened: true}},
				{success: true, wantOpen: true},
				failed,
				{success: true, wantOpen: true},
				{success: true, wantPrimary: true, wantChange: StateChange{Closed: true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run(t, New("audit-kafka", tt.opts...), tt.steps)
		})
	}
}

func TestReset(t *testing.T) {
	b := New("audit-kafka", WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())

	// counters are cleared too
	_, change := b.RecordFailure()
	assert.True(t, change.Opened)
}

func TestConcurrentRecords(t *testing.T) {
	b := New("audit-kafka", WithFailureThreshold(1000))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				b.RecordFailure()
			}
		}()
	}
	wg.Wait()

	assert.False(t, b.IsOpen())
	_, change := b.RecordFailure()
	assert.False(t, change.Opened)
	assert.Equal(t, 501, b.failures)
}
