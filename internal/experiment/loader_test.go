package experiment

import (
	"os"
	"path/filepath"
	"testing"
)

func writeExperiment(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatalf("failed to write experiment file: %v", err)
	}
}

func TestLoadExperimentFallback(t *testing.T) {
	primary := t.TempDir()
	fallback := t.TempDir()

	writeExperiment(t, fallback, "loaded-d6.yaml", `
name: loaded-d6
sides: 6
rolls: 100
dice:
  - weights: {"6": 5.0}
  - {}
`)

	// Primary dir is empty; the loader must fall through to the second.
	l := NewLoader([]string{primary, fallback})
	exp, err := l.LoadExperiment("loaded-d6")
	if err != nil {
		t.Fatalf("failed to load experiment: %v", err)
	}

	if exp.Name != "loaded-d6" {
		t.Errorf("expected name loaded-d6, got %s", exp.Name)
	}
	if len(exp.Dice) != 2 {
		t.Errorf("expected 2 dice, got %d", len(exp.Dice))
	}
	if exp.Replications != 1 {
		t.Errorf("expected default replications 1, got %d", exp.Replications)
	}
}

func TestLoadExperimentMissing(t *testing.T) {
	l := NewLoader([]string{t.TempDir()})
	if _, err := l.LoadExperiment("nope"); err == nil {
		t.Fatal("expected error for missing experiment")
	}
}

func TestLoadFileValidates(t *testing.T) {
	dir := t.TempDir()
	writeExperiment(t, dir, "bad.yaml", `
name: bad
sides: 6
rolls: 0
`)

	if _, err := LoadFile(filepath.Join(dir, "bad.yaml")); err == nil {
		t.Fatal("expected validation error for zero rolls")
	}
}

func TestValidateRejectsFacesAndSides(t *testing.T) {
	exp := &Experiment{Name: "x", Faces: []string{"a"}, Sides: 6, Rolls: 1}
	if err := exp.Validate(); err == nil {
		t.Fatal("expected error when both faces and sides are set")
	}
}

func TestBuildGameAppliesWeights(t *testing.T) {
	exp := &Experiment{
		Name:  "weighted",
		Sides: 6,
		Rolls: 1,
		Dice:  []DieDef{{Weights: map[string]float64{"6": 5}}},
	}
	if err := exp.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	g, err := exp.BuildGame()
	if err != nil {
		t.Fatalf("failed to build game: %v", err)
	}
	if g.Dice() != 1 {
		t.Errorf("expected 1 die, got %d", g.Dice())
	}
}

func TestBuildGameRejectsUnknownWeightFace(t *testing.T) {
	exp := &Experiment{
		Name:  "broken",
		Sides: 6,
		Rolls: 1,
		Dice:  []DieDef{{Weights: map[string]float64{"7": 5}}},
	}
	if err := exp.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	if _, err := exp.BuildGame(); err == nil {
		t.Fatal("expected error for weight on unknown face")
	}
}
