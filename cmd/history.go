/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/suderio/dicelab/internal/persistence"
	"github.com/suderio/dicelab/internal/table"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print past experiment runs from the run log",
	Long:  `Reads the jsonl run log and prints one line per recorded run.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := persistence.NewStore(runLogPath())
		if err != nil {
			fmt.Printf("Error opening run log: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		records, err := store.Load()
		if err != nil {
			fmt.Printf("Error reading run log: %v\n", err)
			os.Exit(1)
		}

		if len(records) == 0 {
			fmt.Println("No recorded runs yet.")
			return
		}

		t := table.New("Time", "Experiment", "Dice", "Rolls", "Reps", "Jackpots", "Mean Rate", "Top Combo")
		for _, rec := range records {
			t.Append(
				rec.Time.Format("2006-01-02 15:04"),
				rec.Experiment,
				strconv.Itoa(rec.Dice),
				strconv.Itoa(rec.Rolls),
				strconv.Itoa(rec.Replications),
				strconv.Itoa(rec.Jackpots),
				fmt.Sprintf("%.4f", rec.MeanJackpotRate),
				fmt.Sprintf("%s (%d)", rec.TopCombo, rec.TopComboCount),
			)
		}
		fmt.Printf("Processed %d run(s).\n", len(records))
		fmt.Println(t.Render())
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
