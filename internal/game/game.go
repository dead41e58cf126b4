// Package game rolls an ordered collection of weighted dice together and
// records the outcome of every roll-event in a results table.
package game

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/suderio/dicelab/internal/dice"
	"github.com/suderio/dicelab/internal/table"
)

var (
	ErrEmptyDiceList     = errors.New("game requires at least one die")
	ErrInconsistentFaces = errors.New("all dice in a game must share the same face set")
	ErrInvalidForm       = errors.New("results form must be \"wide\" or \"narrow\"")
	ErrNoResults         = errors.New("no results available: play the game first")
)

// Supported shapes for ShowResults.
const (
	FormWide   = "wide"
	FormNarrow = "narrow"
)

// Game holds references to externally owned dice. Because dice are not
// copied, changing a die's weights after construction changes the outcome
// distribution of later plays. That sharing is intentional.
type Game struct {
	dice    []*dice.Die
	results [][]dice.Face // row = roll-event, column = die
}

// New creates a Game from an ordered, non-empty sequence of dice that all
// share one face set. Face sets are compared as sets: order differences
// between dice are fine, label differences are not.
func New(gameDice ...*dice.Die) (*Game, error) {
	if len(gameDice) == 0 {
		return nil, ErrEmptyDiceList
	}

	reference := faceSet(gameDice[0])
	for i, d := range gameDice[1:] {
		candidate := faceSet(d)
		if len(candidate) != len(reference) {
			return nil, fmt.Errorf("%w: die %d has %d faces, die 1 has %d",
				ErrInconsistentFaces, i+2, len(candidate), len(reference))
		}
		for f := range reference {
			if _, ok := candidate[f]; !ok {
				return nil, fmt.Errorf("%w: die %d is missing face %q",
					ErrInconsistentFaces, i+2, f)
			}
		}
	}

	return &Game{dice: append([]*dice.Die(nil), gameDice...)}, nil
}

func faceSet(d *dice.Die) map[dice.Face]struct{} {
	set := make(map[dice.Face]struct{})
	for _, f := range d.Faces() {
		set[f] = struct{}{}
	}
	return set
}

// Dice returns the number of dice in the game.
func (g *Game) Dice() int {
	return len(g.dice)
}

// Faces returns the shared face set in the first die's order.
func (g *Game) Faces() []dice.Face {
	return g.dice[0].Faces()
}

// Play rolls every die once per roll-event for rolls events and stores the
// outcome table, fully replacing any previous results. On any failure the
// prior table is left untouched.
func (g *Game) Play(rolls int) error {
	if rolls < 1 {
		return fmt.Errorf("%w: got %d", dice.ErrInvalidRollCount, rolls)
	}

	// One Roll call per die keeps its weight snapshot stable for the
	// whole play, then the per-die columns are folded into event rows.
	columns := make([][]dice.Face, len(g.dice))
	for i, d := range g.dice {
		drawn, err := d.Roll(rolls)
		if err != nil {
			return err
		}
		columns[i] = drawn
	}

	results := make([][]dice.Face, rolls)
	for event := range results {
		row := make([]dice.Face, len(g.dice))
		for i := range g.dice {
			row[i] = columns[i][event]
		}
		results[event] = row
	}

	g.results = results
	return nil
}

// Results returns a copy of the wide results matrix, one row per roll-event
// in play order, one column per die.
func (g *Game) Results() ([][]dice.Face, error) {
	if g.results == nil {
		return nil, ErrNoResults
	}
	out := make([][]dice.Face, len(g.results))
	for i, row := range g.results {
		out[i] = append([]dice.Face(nil), row...)
	}
	return out, nil
}

// ShowResults returns the current results as a table. FormWide yields one
// row per roll-event with a column per die; FormNarrow yields one row per
// (roll-event, die) pair with a single face column.
func (g *Game) ShowResults(form string) (*table.Table, error) {
	if g.results == nil {
		return nil, ErrNoResults
	}

	switch form {
	case FormWide:
		headers := make([]string, len(g.dice)+1)
		headers[0] = "Roll"
		for i := range g.dice {
			headers[i+1] = fmt.Sprintf("Die %d", i+1)
		}
		t := table.New(headers...)
		for event, row := range g.results {
			cells := make([]string, len(row)+1)
			cells[0] = strconv.Itoa(event + 1)
			for i, f := range row {
				cells[i+1] = string(f)
			}
			t.Append(cells...)
		}
		return t, nil

	case FormNarrow:
		t := table.New("Roll", "Die", "Face")
		for event, row := range g.results {
			for i, f := range row {
				t.Append(strconv.Itoa(event+1), strconv.Itoa(i+1), string(f))
			}
		}
		return t, nil

	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidForm, form)
	}
}
