package dice

import (
	"errors"
	"math"
	"testing"
)

func TestNewRejectsDuplicateFaces(t *testing.T) {
	_, err := New([]Face{"1", "2", "2"})
	if err == nil {
		t.Fatal("expected error for duplicate faces")
	}
}

func TestNewRejectsEmptyFaceSet(t *testing.T) {
	_, err := New(nil)
	if err == nil {
		t.Fatal("expected error for empty face set")
	}
}

func TestNewDefaultsWeightsToOne(t *testing.T) {
	d, err := New(NumericFaces(6))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	state := d.ShowState()
	if len(state) != 6 {
		t.Fatalf("expected 6 weights, got %d", len(state))
	}
	for f, w := range state {
		if w != 1.0 {
			t.Errorf("expected default weight 1.0 for face %s, got %v", f, w)
		}
	}
}

func TestChangeWeightUnknownFace(t *testing.T) {
	d, _ := New(NumericFaces(6))

	err := d.ChangeWeight("7", 2.0)
	if !errors.Is(err, ErrInvalidFace) {
		t.Fatalf("expected ErrInvalidFace, got %v", err)
	}

	// State must be untouched after the failed call.
	for f, w := range d.ShowState() {
		if w != 1.0 {
			t.Errorf("weight of face %s changed to %v after failed ChangeWeight", f, w)
		}
	}
}

func TestChangeWeightRejectsNonPositive(t *testing.T) {
	d, _ := New(NumericFaces(6))

	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := d.ChangeWeight("1", w); !errors.Is(err, ErrInvalidWeight) {
			t.Errorf("expected ErrInvalidWeight for %v, got %v", w, err)
		}
	}
}

func TestShowStateIsDefensiveCopy(t *testing.T) {
	d, _ := New(NumericFaces(6))

	state := d.ShowState()
	state["1"] = 99.0

	if d.ShowState()["1"] != 1.0 {
		t.Error("mutating the returned state leaked into the die")
	}
}

func TestRollCountAndMembership(t *testing.T) {
	d, _ := New([]Face{"heads", "tails"})

	faces, err := d.Roll(25)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(faces) != 25 {
		t.Fatalf("expected 25 faces, got %d", len(faces))
	}
	for _, f := range faces {
		if f != "heads" && f != "tails" {
			t.Errorf("rolled face %q outside the face set", f)
		}
	}
}

func TestRollRejectsInvalidCount(t *testing.T) {
	d, _ := New(NumericFaces(6))

	for _, n := range []int{0, -1} {
		if _, err := d.Roll(n); !errors.Is(err, ErrInvalidRollCount) {
			t.Errorf("expected ErrInvalidRollCount for %d, got %v", n, err)
		}
	}
}

func TestRollMockQueue(t *testing.T) {
	MockRolls([]Face{"3", "1", "4"})
	defer ResetMockRolls()

	d, _ := New(NumericFaces(6))
	faces, err := d.Roll(3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []Face{"3", "1", "4"}
	for i, f := range faces {
		if f != want[i] {
			t.Errorf("draw %d: expected %s, got %s", i, want[i], f)
		}
	}
}

func TestFairDieConvergesToUniform(t *testing.T) {
	const trials = 60000
	d, _ := New(NumericFaces(6))

	faces, err := d.Roll(trials)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	counts := make(map[Face]int)
	for _, f := range faces {
		counts[f]++
	}

	// Each face should land within ±2% of 1/6.
	for _, f := range d.Faces() {
		freq := float64(counts[f]) / trials
		if math.Abs(freq-1.0/6.0) > 0.02 {
			t.Errorf("face %s frequency %.4f deviates from 1/6 beyond tolerance", f, freq)
		}
	}
}

func TestHeavyWeightDominatesDraws(t *testing.T) {
	const trials = 10000
	d, _ := New(NumericFaces(6))
	if err := d.ChangeWeight("6", 1000); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	faces, _ := d.Roll(trials)
	sixes := 0
	for _, f := range faces {
		if f == "6" {
			sixes++
		}
	}

	// 1000:1 odds put the expected frequency above 0.99; allow generous slack.
	if freq := float64(sixes) / trials; freq < 0.98 {
		t.Errorf("dominant face frequency %.4f, expected near 1", freq)
	}
}

func TestWeightChangeAffectsLaterRolls(t *testing.T) {
	const trials = 10000
	d, _ := New([]Face{"a", "b"})
	if err := d.ChangeWeight("a", 999); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	faces, _ := d.Roll(trials)
	as := 0
	for _, f := range faces {
		if f == "a" {
			as++
		}
	}
	if float64(as)/trials < 0.95 {
		t.Errorf("expected reweighted face to dominate, got frequency %.4f", float64(as)/trials)
	}
}
