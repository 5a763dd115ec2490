package copying

import (
	"testing"

	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genome"
)

func TestNewIntensityRejectsZeroMaxChildren(t *testing.T) {
	space := genome.IDSpace{NumAncestors: 2, NumSamples: 1}
	_, err := NewIntensity(space, 3, 0)
	if !errors.Is(err, errors.ErrCodeBadNormalization) {
		t.Errorf("NewIntensity(maxChildren=0) = %v, want BAD_NORMALIZATION", err)
	}
}

func TestRecordAndSnapshot(t *testing.T) {
	space := genome.IDSpace{NumAncestors: 2, NumSamples: 1}
	in, err := NewIntensity(space, 3, 2)
	if err != nil {
		t.Fatalf("NewIntensity: %v", err)
	}

	// Sample copies from ancestor 1 at sites 0-1 and ancestor 2 at site 2.
	in.Record([]int32{1, 1, 2})

	if got := in.Count(1, 0); got != 1 {
		t.Errorf("Count(1,0) = %d, want 1", got)
	}
	if got := in.Count(1, 2); got != 0 {
		t.Errorf("Count(1,2) = %d, want 0", got)
	}
	if got := in.Count(2, 2); got != 1 {
		t.Errorf("Count(2,2) = %d, want 1", got)
	}

	snap, err := in.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := snap.At(1, 0); got != 0.5 {
		t.Errorf("snapshot[1][0] = %g, want 0.5", got)
	}
	if got := snap.At(2, 2); got != 0.5 {
		t.Errorf("snapshot[2][2] = %g, want 0.5", got)
	}
	if got := snap.At(2, 0); got != 0 {
		t.Errorf("snapshot[2][0] = %g, want 0", got)
	}
}

func TestRecordSkipsUnset(t *testing.T) {
	space := genome.IDSpace{NumAncestors: 1, NumSamples: 1}
	in, err := NewIntensity(space, 3, 1)
	if err != nil {
		t.Fatalf("NewIntensity: %v", err)
	}

	in.Record([]int32{Unset, 1, Unset})

	if got := in.Count(1, 0); got != 0 {
		t.Errorf("Count(1,0) = %d, want 0", got)
	}
	if got := in.Count(1, 1); got != 1 {
		t.Errorf("Count(1,1) = %d, want 1", got)
	}
}

func TestSnapshotMonotone(t *testing.T) {
	space := genome.IDSpace{NumAncestors: 1, NumSamples: 3}
	in, err := NewIntensity(space, 2, 3)
	if err != nil {
		t.Fatalf("NewIntensity: %v", err)
	}

	prev := make([]float64, 2)
	for step := 0; step < 3; step++ {
		in.Record([]int32{1, 1})
		snap, err := in.Snapshot()
		if err != nil {
			t.Fatalf("Snapshot at step %d: %v", step, err)
		}
		for k := 0; k < 2; k++ {
			v := snap.At(1, k)
			if v < prev[k] {
				t.Errorf("step %d site %d: intensity %g decreased from %g", step, k, v, prev[k])
			}
			if v < 0 || v > 1 {
				t.Errorf("step %d site %d: intensity %g outside [0,1]", step, k, v)
			}
			prev[k] = v
		}
	}
}

func TestSnapshotOverflowIsViolation(t *testing.T) {
	space := genome.IDSpace{NumAncestors: 1, NumSamples: 2}
	in, err := NewIntensity(space, 1, 1)
	if err != nil {
		t.Fatalf("NewIntensity: %v", err)
	}

	in.Record([]int32{1})
	in.Record([]int32{1})

	_, err = in.Snapshot()
	if !errors.Is(err, errors.ErrCodeBadNormalization) {
		t.Errorf("Snapshot() = %v, want BAD_NORMALIZATION for value above 1", err)
	}
}

func TestRootSlotNotNormalChecked(t *testing.T) {
	space := genome.IDSpace{NumAncestors: 1, NumSamples: 2}
	in, err := NewIntensity(space, 1, 1)
	if err != nil {
		t.Fatalf("NewIntensity: %v", err)
	}

	// Two steps copying from the root: the root slot exceeds the
	// constant, but it is a sentinel, not an ancestor.
	in.Record([]int32{0})
	in.Record([]int32{0})

	if _, err := in.Snapshot(); err != nil {
		t.Errorf("Snapshot() = %v, want nil for root-slot counts", err)
	}
}
