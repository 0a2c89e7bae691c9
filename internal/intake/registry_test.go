package intake

import (
	"testing"
	"time"

	"botsense/internal/analysis"
)

func TestRegistryLifecycle(t *testing.T) {
	r := newRegistry(time.Minute)
	defer r.close()

	tr := r.create(analysis.DefaultConfig(), 100)
	if !tr.Active() {
		t.Error("created session not active")
	}
	if r.len() != 1 {
		t.Errorf("len = %d, want 1", r.len())
	}

	got, ok := r.get(tr.ID())
	if !ok || got != tr {
		t.Error("get did not return the registered tracker")
	}

	r.remove(tr.ID())
	if _, ok := r.get(tr.ID()); ok {
		t.Error("removed session still resolvable")
	}
	if tr.Active() {
		t.Error("removed session left active")
	}
}

func TestRegistryUnknownID(t *testing.T) {
	r := newRegistry(time.Minute)
	defer r.close()

	if _, ok := r.get("nope"); ok {
		t.Error("unknown ID resolved")
	}
	r.remove("nope") // must not panic
}

func TestRegistryCloseStopsSessions(t *testing.T) {
	r := newRegistry(time.Minute)
	tr := r.create(analysis.DefaultConfig(), 100)
	r.close()

	if tr.Active() {
		t.Error("close left session active")
	}
	if r.len() != 0 {
		t.Errorf("len = %d after close, want 0", r.len())
	}
}
