package experiment

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/suderio/dicelab/internal/analysis"
	"github.com/suderio/dicelab/internal/dice"
	"github.com/suderio/dicelab/internal/rules"
)

// Report summarizes one experiment run. Per-replication jackpot counts feed
// the mean rate; the detail aggregations describe the final replication.
type Report struct {
	Experiment   string
	DiceCount    int
	Rolls        int
	Replications int

	Jackpots        []int // one count per replication
	MeanJackpotRate float64

	FaceTotals   map[dice.Face]int
	Combos       []analysis.Tally
	Permutes     []analysis.Tally
	FilterCounts map[string]int // filter name -> matching events, final replication
}

// TopCombo returns the most frequent combination of the final replication.
func (r *Report) TopCombo() (analysis.Tally, bool) {
	if len(r.Combos) == 0 {
		return analysis.Tally{}, false
	}
	return r.Combos[0], true
}

// Runner executes experiments. A single Runner can be reused; the CEL
// registry is shared across runs.
type Runner struct {
	registry     *rules.Registry
	showProgress bool
}

// NewRunner creates a Runner. When showProgress is set, replications drive a
// terminal progress bar.
func NewRunner(showProgress bool) (*Runner, error) {
	registry, err := rules.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rules registry: %w", err)
	}
	return &Runner{registry: registry, showProgress: showProgress}, nil
}

// Run plays the experiment's game once per replication and aggregates the
// analysis of the outcomes.
func (r *Runner) Run(exp *Experiment) (*Report, error) {
	if err := exp.Validate(); err != nil {
		return nil, err
	}

	g, err := exp.BuildGame()
	if err != nil {
		return nil, err
	}
	analyzer, err := analysis.New(g)
	if err != nil {
		return nil, err
	}

	// Compile filters once so replications only pay for evaluation.
	filters := make(map[string]*rules.Filter, len(exp.Filters))
	for _, def := range exp.Filters {
		f, err := r.registry.Compile(def.Expr)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", def.Name, err)
		}
		filters[def.Name] = f
	}

	var bar *progressbar.ProgressBar
	if r.showProgress {
		bar = progressbar.Default(int64(exp.Replications), "Replications")
	}

	report := &Report{
		Experiment:   exp.Name,
		DiceCount:    g.Dice(),
		Rolls:        exp.Rolls,
		Replications: exp.Replications,
	}

	for rep := 0; rep < exp.Replications; rep++ {
		if err := g.Play(exp.Rolls); err != nil {
			return nil, err
		}

		jackpots, _, err := analyzer.Jackpot()
		if err != nil {
			return nil, err
		}
		report.Jackpots = append(report.Jackpots, jackpots)

		if bar != nil {
			bar.Add(1)
		}
	}

	totalJackpots := 0
	for _, j := range report.Jackpots {
		totalJackpots += j
	}
	report.MeanJackpotRate = float64(totalJackpots) / float64(exp.Replications*exp.Rolls)

	// Detail aggregations over the final replication's table.
	if report.Combos, err = analyzer.ComboCounts(); err != nil {
		return nil, err
	}
	if report.Permutes, err = analyzer.PermuteCounts(); err != nil {
		return nil, err
	}

	perRoll, err := analyzer.FaceCountsPerRoll()
	if err != nil {
		return nil, err
	}
	report.FaceTotals = make(map[dice.Face]int, len(g.Faces()))
	for _, row := range perRoll {
		for face, n := range row {
			report.FaceTotals[face] += n
		}
	}

	if len(filters) > 0 {
		results, err := g.Results()
		if err != nil {
			return nil, err
		}
		rows := make([][]string, len(results))
		for i, row := range results {
			cells := make([]string, len(row))
			for j, f := range row {
				cells[j] = string(f)
			}
			rows[i] = cells
		}

		report.FilterCounts = make(map[string]int, len(filters))
		for name, f := range filters {
			n, err := f.CountMatches(rows)
			if err != nil {
				return nil, fmt.Errorf("filter %q: %w", name, err)
			}
			report.FilterCounts[name] = n
		}
	}

	return report, nil
}
