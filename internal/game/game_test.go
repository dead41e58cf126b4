package game

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/dicelab/internal/dice"
)

func newDie(t *testing.T, faces ...dice.Face) *dice.Die {
	t.Helper()
	d, err := dice.New(faces)
	require.NoError(t, err)
	return d
}

func TestNewRejectsEmptyDiceList(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrEmptyDiceList)
}

func TestNewRejectsInconsistentFaces(t *testing.T) {
	d1 := newDie(t, "1", "2", "3")
	d2 := newDie(t, "1", "2", "4")

	_, err := New(d1, d2)
	assert.ErrorIs(t, err, ErrInconsistentFaces)
}

func TestNewAcceptsReorderedFaceSets(t *testing.T) {
	d1 := newDie(t, "1", "2", "3")
	d2 := newDie(t, "3", "1", "2")

	_, err := New(d1, d2)
	assert.NoError(t, err)
}

func TestPlayRecordsAllEvents(t *testing.T) {
	g, err := New(newDie(t, "1", "2"), newDie(t, "1", "2"))
	require.NoError(t, err)

	require.NoError(t, g.Play(10))

	results, err := g.Results()
	require.NoError(t, err)
	assert.Len(t, results, 10)
	for _, row := range results {
		assert.Len(t, row, 2)
	}
}

func TestPlayRejectsInvalidRollCount(t *testing.T) {
	g, err := New(newDie(t, "1", "2"))
	require.NoError(t, err)

	assert.ErrorIs(t, g.Play(0), dice.ErrInvalidRollCount)
}

func TestPlayReplacesPriorResults(t *testing.T) {
	g, err := New(newDie(t, "1", "2"))
	require.NoError(t, err)

	require.NoError(t, g.Play(5))
	require.NoError(t, g.Play(3))

	results, err := g.Results()
	require.NoError(t, err)
	assert.Len(t, results, 3, "second play must fully replace the first")
}

func TestPlayFailureLeavesResultsUntouched(t *testing.T) {
	g, err := New(newDie(t, "1", "2"))
	require.NoError(t, err)

	require.NoError(t, g.Play(5))
	require.Error(t, g.Play(-1))

	results, err := g.Results()
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestShowResultsBeforePlay(t *testing.T) {
	g, err := New(newDie(t, "1", "2"))
	require.NoError(t, err)

	_, err = g.ShowResults(FormWide)
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = g.Results()
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestShowResultsRejectsUnknownForm(t *testing.T) {
	g, err := New(newDie(t, "1", "2"))
	require.NoError(t, err)
	require.NoError(t, g.Play(1))

	_, err = g.ShowResults("diagonal")
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestShowResultsWide(t *testing.T) {
	// Play feeds the mock queue die by die: die 1's column first.
	dice.MockRolls([]dice.Face{"1", "2", "2", "1"})
	defer dice.ResetMockRolls()

	g, err := New(newDie(t, "1", "2"), newDie(t, "1", "2"))
	require.NoError(t, err)
	require.NoError(t, g.Play(2))

	tbl, err := g.ShowResults(FormWide)
	require.NoError(t, err)

	assert.Equal(t, []string{"Roll", "Die 1", "Die 2"}, tbl.Headers())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"1", "1", "2"}, tbl.Rows()[0])
	assert.Equal(t, []string{"2", "2", "1"}, tbl.Rows()[1])
}

func TestShowResultsNarrow(t *testing.T) {
	dice.MockRolls([]dice.Face{"1", "2", "2", "1"})
	defer dice.ResetMockRolls()

	g, err := New(newDie(t, "1", "2"), newDie(t, "1", "2"))
	require.NoError(t, err)
	require.NoError(t, g.Play(2))

	tbl, err := g.ShowResults(FormNarrow)
	require.NoError(t, err)

	assert.Equal(t, []string{"Roll", "Die", "Face"}, tbl.Headers())
	require.Equal(t, 4, tbl.Len(), "narrow form has one row per (event, die) pair")
	assert.Equal(t, []string{"1", "1", "1"}, tbl.Rows()[0])
	assert.Equal(t, []string{"1", "2", "2"}, tbl.Rows()[1])
	assert.Equal(t, []string{"2", "1", "2"}, tbl.Rows()[2])
	assert.Equal(t, []string{"2", "2", "1"}, tbl.Rows()[3])
}

func TestResultsReturnsCopy(t *testing.T) {
	g, err := New(newDie(t, "1", "2"))
	require.NoError(t, err)
	require.NoError(t, g.Play(2))

	results, err := g.Results()
	require.NoError(t, err)
	results[0][0] = "tampered"

	fresh, err := g.Results()
	require.NoError(t, err)
	assert.NotEqual(t, dice.Face("tampered"), fresh[0][0])
}

func TestSharedDiceReweightAffectsLaterPlays(t *testing.T) {
	d := newDie(t, "a", "b")
	g, err := New(d)
	require.NoError(t, err)

	// The game references the die, so a reweight between plays biases
	// the next results table.
	require.NoError(t, d.ChangeWeight("b", 9999))
	require.NoError(t, g.Play(2000))

	results, err := g.Results()
	require.NoError(t, err)

	bs := 0
	for _, row := range results {
		if row[0] == "b" {
			bs++
		}
	}
	assert.Greater(t, bs, 1900, "reweighted die should dominate later plays")
}

func TestRollIndexIsOneBased(t *testing.T) {
	g, err := New(newDie(t, "1"))
	require.NoError(t, err)
	require.NoError(t, g.Play(3))

	tbl, err := g.ShowResults(FormWide)
	require.NoError(t, err)
	for i := 0; i < tbl.Len(); i++ {
		assert.Equal(t, strconv.Itoa(i+1), tbl.Cell(i, 0))
	}
}
