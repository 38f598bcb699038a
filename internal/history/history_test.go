package history

import (
	"testing"

	"github.com/tonhe/mgce/internal/card"
)

func cfgNamed(name string) card.Configuration {
	c := card.New()
	c.Fields["name"] = name
	return *c
}

func TestRingPushPop(t *testing.T) {
	r := NewRing[int](3)
	for i := 0; i < 5; i++ {
		r.Push(i)
	}
	if r.Len() != 3 {
		t.Errorf("expected len 3, got %d", r.Len())
	}
	all := r.All()
	if all[0] != 2 || all[2] != 4 {
		t.Errorf("expected [2 3 4], got %v", all)
	}
	v, ok := r.Pop()
	if !ok || v != 4 {
		t.Errorf("expected pop 4, got %d (%v)", v, ok)
	}
	r.Push(9)
	all = r.All()
	if len(all) != 3 || all[0] != 2 || all[2] != 9 {
		t.Errorf("expected [2 3 9], got %v", all)
	}
}

func TestRingEmpty(t *testing.T) {
	r := NewRing[string](0)
	if r.Cap() != 1 {
		t.Errorf("expected capacity 1, got %d", r.Cap())
	}
	if _, ok := r.Pop(); ok {
		t.Error("Pop on empty ring should fail")
	}
	if _, ok := r.Peek(); ok {
		t.Error("Peek on empty ring should fail")
	}
	if len(r.All()) != 0 {
		t.Error("All on empty ring should be empty")
	}
}

func TestRingReset(t *testing.T) {
	r := NewRing[int](4)
	r.Push(1)
	r.Push(2)
	r.Reset()
	if r.Len() != 0 {
		t.Errorf("expected empty ring after reset, got %d", r.Len())
	}
	r.Push(3)
	if v, _ := r.Peek(); v != 3 {
		t.Errorf("expected 3, got %d", v)
	}
}

func TestHistoryUndo(t *testing.T) {
	h := New(10)
	h.Reset(cfgNamed("a"), "load")
	h.Record(cfgNamed("b"), "edit")
	h.Record(cfgNamed("c"), "edit")

	rev, ok := h.Undo()
	if !ok {
		t.Fatal("expected undo to succeed")
	}
	if rev.Config.Fields["name"] != "b" {
		t.Errorf("expected b, got %v", rev.Config.Fields["name"])
	}
	rev, _ = h.Undo()
	if rev.Config.Fields["name"] != "a" {
		t.Errorf("expected a, got %v", rev.Config.Fields["name"])
	}
	if h.CanUndo() {
		t.Error("the first revision must not be undone")
	}
	if _, ok := h.Undo(); ok {
		t.Error("expected undo to fail at the first revision")
	}
}

func TestHistorySkipsDuplicates(t *testing.T) {
	h := New(10)
	h.Reset(cfgNamed("a"), "load")
	if h.Record(cfgNamed("a"), "edit") {
		t.Error("identical config should not be recorded")
	}
	if !h.Record(cfgNamed("b"), "edit") {
		t.Error("changed config should be recorded")
	}
	if h.Len() != 2 {
		t.Errorf("expected 2 revisions, got %d", h.Len())
	}
}

func TestHistoryBounded(t *testing.T) {
	h := New(2)
	h.Reset(cfgNamed("a"), "load")
	h.Record(cfgNamed("b"), "edit")
	h.Record(cfgNamed("c"), "edit")
	revs := h.Revisions()
	if len(revs) != 2 || revs[0].Config.Fields["name"] != "b" {
		t.Errorf("expected oldest revision b, got %+v", revs)
	}
}

func TestHistorySnapshotsAreCopies(t *testing.T) {
	h := New(0)
	cfg := cfgNamed("a")
	h.Reset(cfg, "load")
	cfg.Fields["name"] = "mutated"
	cur, _ := h.Current()
	if cur.Config.Fields["name"] != "a" {
		t.Errorf("expected stored copy to be unaffected, got %v", cur.Config.Fields["name"])
	}
}
