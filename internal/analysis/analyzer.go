// Package analysis computes aggregate statistics over the results table of a
// played dice game: jackpots, per-event face counts, and combination or
// permutation frequencies.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/suderio/dicelab/internal/dice"
	"github.com/suderio/dicelab/internal/game"
)

// ResultSource is the read-only view the analyzer needs from a game: the
// shared face set and the wide results matrix. game.Game satisfies it.
type ResultSource interface {
	Faces() []dice.Face
	Results() ([][]dice.Face, error)
}

// Analyzer recomputes every aggregation from the source's current results,
// so its output always reflects the most recent play.
type Analyzer struct {
	source ResultSource
}

// New validates the source up front and returns an Analyzer bound to it.
func New(source ResultSource) (*Analyzer, error) {
	if source == nil {
		return nil, fmt.Errorf("analysis requires a non-nil result source")
	}
	return &Analyzer{source: source}, nil
}

// Jackpot counts roll-events where every die shows the identical face. The
// returned flags mark which events were jackpots, one per event. A single-die
// game jackpots on every event.
func (a *Analyzer) Jackpot() (int, []bool, error) {
	results, err := a.source.Results()
	if err != nil {
		return 0, nil, err
	}

	count := 0
	flags := make([]bool, len(results))
	for event, row := range results {
		jackpot := true
		for _, f := range row[1:] {
			if f != row[0] {
				jackpot = false
				break
			}
		}
		flags[event] = jackpot
		if jackpot {
			count++
		}
	}
	return count, flags, nil
}

// FaceCountsPerRoll counts, for every roll-event, how many dice showed each
// face of the shared face set. Faces that never appeared in an event carry an
// explicit zero, so each map sums to the number of dice.
func (a *Analyzer) FaceCountsPerRoll() ([]map[dice.Face]int, error) {
	results, err := a.source.Results()
	if err != nil {
		return nil, err
	}

	faces := a.source.Faces()
	counts := make([]map[dice.Face]int, len(results))
	for event, row := range results {
		rowCounts := make(map[dice.Face]int, len(faces))
		for _, f := range faces {
			rowCounts[f] = 0
		}
		for _, f := range row {
			rowCounts[f]++
		}
		counts[event] = rowCounts
	}
	return counts, nil
}

// Tally pairs a face tuple with the number of roll-events that produced it.
type Tally struct {
	Faces []dice.Face
	Count int
}

// Key renders the tuple as a single comparable string.
func (t Tally) Key() string {
	parts := make([]string, len(t.Faces))
	for i, f := range t.Faces {
		parts[i] = string(f)
	}
	return strings.Join(parts, "|")
}

// ComboCounts counts distinct unordered combinations of faces across all
// roll-events. Each event's faces are sorted into canonical order before
// counting, so die order never distinguishes two events. Combinations that
// never occurred are omitted; the counts sum to the number of roll-events.
func (a *Analyzer) ComboCounts() ([]Tally, error) {
	return a.tally(func(row []dice.Face) []dice.Face {
		combo := append([]dice.Face(nil), row...)
		sort.Slice(combo, func(i, j int) bool { return combo[i] < combo[j] })
		return combo
	})
}

// PermuteCounts counts distinct ordered face sequences across all
// roll-events, preserving die position: the same faces in a different die
// order count as distinct permutations.
func (a *Analyzer) PermuteCounts() ([]Tally, error) {
	return a.tally(func(row []dice.Face) []dice.Face {
		return append([]dice.Face(nil), row...)
	})
}

// tally groups roll-events by a per-event key and returns the groups sorted
// by descending count, key ascending on ties, so output order is stable.
func (a *Analyzer) tally(keyFor func([]dice.Face) []dice.Face) ([]Tally, error) {
	results, err := a.source.Results()
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*Tally)
	for _, row := range results {
		faces := keyFor(row)
		key := Tally{Faces: faces}.Key()
		if entry, ok := grouped[key]; ok {
			entry.Count++
		} else {
			grouped[key] = &Tally{Faces: faces, Count: 1}
		}
	}

	tallies := make([]Tally, 0, len(grouped))
	for _, entry := range grouped {
		tallies = append(tallies, *entry)
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].Key() < tallies[j].Key()
	})
	return tallies, nil
}

// assert the concrete game satisfies the analyzer's view of it
var _ ResultSource = (*game.Game)(nil)
