// Package parser implements the die-spec notation used by the CLI and the
// lab TUI to describe a weighted die:
//
//	d6
//	faces: 1 2 3 4 5 6
//	faces: heads tails weights: 1 3
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suderio/dicelab/internal/dice"
)

// DieSpec is the top-level notation: either a dN shorthand or an explicit
// face list with optional weights.
type DieSpec struct {
	Shorthand *ShorthandExpr `parser:"( @@"`
	Explicit  *FacesExpr     `parser:"| @@ )"`
}

// ShorthandExpr recognizes the dN macro for a fair die with faces 1..N.
type ShorthandExpr struct {
	Raw string `parser:"@Shorthand"`
}

// FacesExpr lists face labels explicitly, optionally followed by one weight
// per face in the same order.
type FacesExpr struct {
	Keyword string       `parser:"\"faces\" \":\""`
	Faces   []string     `parser:"@(Ident|Number)+"`
	Weights *WeightsExpr `parser:"@@?"`
}

// WeightsExpr carries the positional weight list of a FacesExpr.
type WeightsExpr struct {
	Keyword string    `parser:"\"weights\" \":\""`
	Values  []float64 `parser:"@Number+"`
}

// ToDie materializes the parsed spec into a weighted die.
func (s *DieSpec) ToDie() (*dice.Die, error) {
	if s.Shorthand != nil {
		sides, err := strconv.Atoi(strings.TrimLeft(s.Shorthand.Raw, "dD"))
		if err != nil || sides < 1 {
			return nil, fmt.Errorf("invalid die shorthand %q", s.Shorthand.Raw)
		}
		return dice.New(dice.NumericFaces(sides))
	}

	faces := make([]dice.Face, len(s.Explicit.Faces))
	for i, f := range s.Explicit.Faces {
		faces[i] = dice.Face(f)
	}
	d, err := dice.New(faces)
	if err != nil {
		return nil, err
	}

	if s.Explicit.Weights != nil {
		values := s.Explicit.Weights.Values
		if len(values) != len(faces) {
			return nil, fmt.Errorf("spec lists %d faces but %d weights", len(faces), len(values))
		}
		for i, w := range values {
			if err := d.ChangeWeight(faces[i], w); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}
