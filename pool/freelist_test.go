package pool

import (
	"testing"

	"github.com/momentics/hioload-mem/api"
)

func TestFreeListFirstFitPreservesOrder(t *testing.T) {
	fl := NewFreeList(4)
	for _, r := range []api.Range{{Begin: 0, End: 2}, {Begin: 10, End: 20}, {Begin: 30, End: 35}, {Begin: 40, End: 60}} {
		if !fl.Push(r) {
			t.Fatalf("push %v rejected", r)
		}
	}
	if fl.Push(api.Range{Begin: 70, End: 71}) {
		t.Fatal("push beyond capacity accepted")
	}

	r, ok := fl.TakeFirstFit(5)
	if !ok || r != (api.Range{Begin: 10, End: 20}) {
		t.Fatalf("first fit = %v,%v; want [10,20)", r, ok)
	}
	want := []api.Range{{Begin: 0, End: 2}, {Begin: 30, End: 35}, {Begin: 40, End: 60}}
	got := fl.Ranges()
	if len(got) != len(want) {
		t.Fatalf("ranges = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranges = %v, want %v", got, want)
		}
	}
	if fl.Slots() != 2+5+20 {
		t.Errorf("slots = %d", fl.Slots())
	}
}

func TestFreeListNoFit(t *testing.T) {
	fl := NewFreeList(2)
	fl.Push(api.Range{Begin: 0, End: 3})
	if _, ok := fl.TakeFirstFit(4); ok {
		t.Fatal("unexpected fit")
	}
	if fl.Len() != 1 {
		t.Errorf("len = %d after failed take", fl.Len())
	}
	fl.Reset()
	if fl.Len() != 0 || fl.Full() {
		t.Error("reset did not empty the list")
	}
}

func TestFreeListZeroCap(t *testing.T) {
	fl := NewFreeList(-3)
	if fl.Cap() != 0 || !fl.Full() {
		t.Fatalf("cap = %d, full = %v", fl.Cap(), fl.Full())
	}
	if fl.Push(api.Range{Begin: 0, End: 1}) {
		t.Error("zero-cap list accepted a range")
	}
}
