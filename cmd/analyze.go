/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/suderio/dicelab/internal/analysis"
	"github.com/suderio/dicelab/internal/dice"
	"github.com/suderio/dicelab/internal/experiment"
	"github.com/suderio/dicelab/internal/persistence"
	"github.com/suderio/dicelab/internal/table"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [experiment_name]",
	Short: "Run an experiment and print the full outcome analysis",
	Long: `Runs every replication of an experiment, then prints jackpot counts,
face totals, the most frequent combinations and permutations, and any
custom filter counts. Each run is appended to the run history log.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		top, _ := cmd.Flags().GetInt("top")
		noLog, _ := cmd.Flags().GetBool("no_log")

		exp := loadExperimentArg(args, file)

		runner, err := experiment.NewRunner(true)
		if err != nil {
			fmt.Printf("Error initializing runner: %v\n", err)
			os.Exit(1)
		}

		report, err := runner.Run(exp)
		if err != nil {
			fmt.Printf("Error running experiment: %v\n", err)
			os.Exit(1)
		}

		printReport(report, top)

		if !noLog {
			if err := appendRunRecord(report); err != nil {
				fmt.Printf("Warning: could not append run record: %v\n", err)
			}
		}
	},
}

func printReport(report *experiment.Report, top int) {
	fmt.Printf("\nExperiment %s: %d dice, %d roll-events x %d replication(s)\n",
		report.Experiment, report.DiceCount, report.Rolls, report.Replications)

	summary := table.New("Replication", "Jackpots", "Rate")
	for i, j := range report.Jackpots {
		rate := float64(j) / float64(report.Rolls)
		summary.Append(strconv.Itoa(i+1), strconv.Itoa(j), fmt.Sprintf("%.4f", rate))
	}
	fmt.Println(summary.Render())
	fmt.Printf("Mean jackpot rate: %.4f\n\n", report.MeanJackpotRate)

	faces := make([]string, 0, len(report.FaceTotals))
	for f := range report.FaceTotals {
		faces = append(faces, string(f))
	}
	sort.Strings(faces)
	faceTable := table.New("Face", "Total Hits")
	for _, f := range faces {
		faceTable.Append(f, strconv.Itoa(report.FaceTotals[dice.Face(f)]))
	}
	fmt.Println(faceTable.Render())

	fmt.Println(tallyTable("Combination", report.Combos, top).Render())
	fmt.Println(tallyTable("Permutation", report.Permutes, top).Render())

	if len(report.FilterCounts) > 0 {
		names := make([]string, 0, len(report.FilterCounts))
		for n := range report.FilterCounts {
			names = append(names, n)
		}
		sort.Strings(names)
		filterTable := table.New("Filter", "Matching Events")
		for _, n := range names {
			filterTable.Append(n, strconv.Itoa(report.FilterCounts[n]))
		}
		fmt.Println(filterTable.Render())
	}
}

// tallyTable renders the first top entries of a tally list.
func tallyTable(label string, tallies []analysis.Tally, top int) *table.Table {
	t := table.New(label, "Count")
	for i, tally := range tallies {
		if i >= top {
			break
		}
		t.Append(tally.Key(), strconv.Itoa(tally.Count))
	}
	return t
}

func appendRunRecord(report *experiment.Report) error {
	store, err := persistence.NewStore(runLogPath())
	if err != nil {
		return err
	}
	defer store.Close()

	rec := persistence.RunRecord{
		Time:            time.Now(),
		Experiment:      report.Experiment,
		Dice:            report.DiceCount,
		Rolls:           report.Rolls,
		Replications:    report.Replications,
		Jackpots:        report.Jackpots[len(report.Jackpots)-1],
		MeanJackpotRate: report.MeanJackpotRate,
	}
	if top, ok := report.TopCombo(); ok {
		rec.TopCombo = top.Key()
		rec.TopComboCount = top.Count
	}
	return store.Append(rec)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("file", "f", "", "Path of an experiment YAML file (bypasses name lookup)")
	analyzeCmd.Flags().Int("top", 10, "How many combinations/permutations to print")
	analyzeCmd.Flags().Bool("no_log", false, "Skip appending this run to the history log")
}
