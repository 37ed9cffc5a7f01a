package clock

import (
	"reflect"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual(epoch)
	var got []string
	m.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(100*time.Millisecond, func() { got = append(got, "b") })

	m.Advance(99 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}

	m.Advance(time.Second)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if m.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", m.Pending())
	}
	if !m.Now().Equal(epoch.Add(time.Second + 99*time.Millisecond)) {
		t.Fatalf("Now() = %v", m.Now())
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	tm := m.AfterFunc(time.Second, func() { fired = true })

	if !tm.Stop() {
		t.Fatalf("Stop() = false on a pending timer")
	}
	if tm.Stop() {
		t.Fatalf("second Stop() = true")
	}
	m.Advance(2 * time.Second)
	if fired {
		t.Fatalf("stopped timer fired")
	}
}

func TestManualChainedCallbacks(t *testing.T) {
	m := NewManual(epoch)
	var at []time.Duration
	var step func()
	step = func() {
		at = append(at, m.Now().Sub(epoch))
		if len(at) < 3 {
			m.AfterFunc(200*time.Millisecond, step)
		}
	}
	m.AfterFunc(100*time.Millisecond, step)

	m.Advance(450 * time.Millisecond)
	want := []time.Duration{100 * time.Millisecond, 300 * time.Millisecond}
	if !reflect.DeepEqual(at, want) {
		t.Fatalf("fired at %v, want %v", at, want)
	}

	m.Advance(50 * time.Millisecond)
	if len(at) != 3 || at[2] != 500*time.Millisecond {
		t.Fatalf("third step at %v", at)
	}
}

func TestRealAfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("real timer did not fire")
	}

	tm := Real{}.AfterFunc(time.Hour, func() {})
	if !tm.Stop() {
		t.Fatalf("Stop() = false on a pending real timer")
	}
}
