// Package experiment defines YAML-described Monte Carlo experiments and the
// runner that executes them: build the dice, play the game, analyze the
// results, repeat per replication.
package experiment

import (
	"fmt"

	"github.com/suderio/dicelab/internal/dice"
	"github.com/suderio/dicelab/internal/game"
)

// DieDef describes one die of the experiment. Weights override the default
// 1.0 for the named faces only; unnamed faces stay fair.
type DieDef struct {
	Weights map[string]float64 `yaml:"weights"`
}

// FilterDef is a named CEL predicate counted over the results table.
type FilterDef struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// Experiment is the top-level structure of an experiment YAML file.
// Either Faces or Sides defines the shared face set; Sides N is shorthand
// for the numeric faces 1..N.
type Experiment struct {
	Name         string      `yaml:"name"`
	Faces        []string    `yaml:"faces"`
	Sides        int         `yaml:"sides"`
	Dice         []DieDef    `yaml:"dice"`
	Rolls        int         `yaml:"rolls"`
	Replications int         `yaml:"replications"`
	Filters      []FilterDef `yaml:"filters"`
}

// Validate checks the experiment is runnable and fills in defaults:
// one die and one replication when unspecified.
func (e *Experiment) Validate() error {
	if len(e.Faces) == 0 && e.Sides < 1 {
		return fmt.Errorf("experiment %q must define faces or sides", e.Name)
	}
	if len(e.Faces) > 0 && e.Sides > 0 {
		return fmt.Errorf("experiment %q defines both faces and sides", e.Name)
	}
	if e.Rolls < 1 {
		return fmt.Errorf("experiment %q must roll at least once", e.Name)
	}
	if len(e.Dice) == 0 {
		e.Dice = []DieDef{{}}
	}
	if e.Replications < 1 {
		e.Replications = 1
	}
	for _, f := range e.Filters {
		if f.Name == "" || f.Expr == "" {
			return fmt.Errorf("experiment %q has a filter missing name or expr", e.Name)
		}
	}
	return nil
}

// FaceSet resolves the shared face set of every die.
func (e *Experiment) FaceSet() []dice.Face {
	if e.Sides > 0 {
		return dice.NumericFaces(e.Sides)
	}
	faces := make([]dice.Face, len(e.Faces))
	for i, f := range e.Faces {
		faces[i] = dice.Face(f)
	}
	return faces
}

// BuildGame constructs the weighted dice and the game over them.
func (e *Experiment) BuildGame() (*game.Game, error) {
	faces := e.FaceSet()

	built := make([]*dice.Die, len(e.Dice))
	for i, def := range e.Dice {
		d, err := dice.New(faces)
		if err != nil {
			return nil, fmt.Errorf("die %d: %w", i+1, err)
		}
		for face, w := range def.Weights {
			if err := d.ChangeWeight(dice.Face(face), w); err != nil {
				return nil, fmt.Errorf("die %d: %w", i+1, err)
			}
		}
		built[i] = d
	}
	return game.New(built...)
}
