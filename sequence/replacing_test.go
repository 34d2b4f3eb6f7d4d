package sequence_test

import (
	"testing"

	"github.com/momentics/hioload-mem/record"
	"github.com/momentics/hioload-mem/sequence"
)

func point(id uint64, ts string) record.DataPoint {
	return record.DataPoint{ID: id, Value: float64(id) * 10, Timestamp: ts}
}

func TestReplacingCommitReplaces(t *testing.T) {
	s := sequence.NewReplacing[record.DataPoint](10)
	s.Add(point(1, "2025-10-27T12:00:00Z"))
	if s.Len() != 0 || s.Step() != 0 {
		t.Fatalf("staged point visible: len %d step %d", s.Len(), s.Step())
	}
	s.Commit()
	if s.Len() != 1 || s.Step() != 1 || s.Current()[0].ID != 1 {
		t.Fatalf("after commit: len %d step %d", s.Len(), s.Step())
	}

	s.Add(point(2, "2025-10-27T12:01:00Z"))
	if s.Current()[0].ID != 1 {
		t.Fatal("staged point replaced current before commit")
	}
	s.Commit()
	if s.Len() != 1 || s.Step() != 2 || s.Current()[0].ID != 2 {
		t.Fatalf("after second commit: len %d step %d id %d", s.Len(), s.Step(), s.Current()[0].ID)
	}
}

func TestReplacingVaryingSizes(t *testing.T) {
	s := sequence.NewReplacing[record.DataPoint](10)
	s.Add(point(1, "2025-10-27T12:00:00Z"))
	s.Commit()
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
	s.AddAll(
		point(2, "2025-10-27T12:01:00Z"),
		point(3, "2025-10-27T12:02:00Z"),
		point(4, "2025-10-27T12:03:00Z"),
	)
	s.Commit()
	if s.Len() != 3 || s.Current()[2].ID != 4 {
		t.Fatalf("len = %d", s.Len())
	}
	s.Commit()
	if s.Len() != 0 || !s.IsEmpty() || s.Step() != 3 {
		t.Fatalf("empty commit: len %d step %d", s.Len(), s.Step())
	}
}

func TestReplacingClear(t *testing.T) {
	s := sequence.NewReplacing[int](5)
	s.Add(1)
	s.Commit()
	s.Add(2)
	s.Clear()
	if s.Len() != 0 || s.Step() != 0 || s.PendingCount() != 0 {
		t.Fatalf("clear left state: len %d step %d pending %d", s.Len(), s.Step(), s.PendingCount())
	}
}

func TestReplacingPoolReuse(t *testing.T) {
	s := sequence.NewReplacing[int](5)
	for i := 1; i <= 10; i++ {
		s.Add(i)
		s.Commit()
	}
	if s.Buffer().Pool().Stats().TotalReuse == 0 {
		t.Error("commits never reused a pooled container")
	}
	if m := s.StatsMap(); m["step"] != uint64(10) {
		t.Errorf("stats step = %v", m["step"])
	}
}
