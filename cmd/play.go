/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suderio/dicelab/internal/experiment"
	"github.com/suderio/dicelab/internal/game"
	"github.com/suderio/dicelab/internal/table"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [experiment_name]",
	Short: "Play an experiment's dice game once and print the results table",
	Long: `Loads an experiment definition, rolls all of its dice for the configured
number of roll-events and prints the outcome table in wide or narrow form.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		form, _ := cmd.Flags().GetString("form")
		rolls, _ := cmd.Flags().GetInt("rolls")
		maxRows, _ := cmd.Flags().GetInt("max_rows")

		exp := loadExperimentArg(args, file)
		if rolls > 0 {
			exp.Rolls = rolls
		}

		g, err := exp.BuildGame()
		if err != nil {
			fmt.Printf("Error building game: %v\n", err)
			os.Exit(1)
		}
		if err := g.Play(exp.Rolls); err != nil {
			fmt.Printf("Error playing: %v\n", err)
			os.Exit(1)
		}

		tbl, err := g.ShowResults(form)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Experiment %s: %d dice, %d roll-events (%s form)\n",
			exp.Name, g.Dice(), exp.Rolls, form)
		fmt.Println(truncated(tbl, maxRows).Render())
		if tbl.Len() > maxRows {
			fmt.Printf("... %d more rows (raise --max_rows to see them)\n", tbl.Len()-maxRows)
		}
	},
}

// loadExperimentArg resolves the experiment from an explicit file path or a
// named lookup through the configured directories.
func loadExperimentArg(args []string, file string) *experiment.Experiment {
	if file != "" {
		exp, err := experiment.LoadFile(file)
		if err != nil {
			fmt.Printf("Error loading experiment: %v\n", err)
			os.Exit(1)
		}
		return exp
	}
	if len(args) == 0 {
		fmt.Println("Error: must specify either [experiment_name] argument or --file flag")
		os.Exit(1)
	}

	loader := experiment.NewLoader(experimentDirs())
	exp, err := loader.LoadExperiment(args[0])
	if err != nil {
		fmt.Printf("Error loading experiment: %v\n", err)
		os.Exit(1)
	}
	return exp
}

// truncated copies at most maxRows rows into a display table.
func truncated(tbl *table.Table, maxRows int) *table.Table {
	if tbl.Len() <= maxRows {
		return tbl
	}
	out := table.New(tbl.Headers()...)
	for i, row := range tbl.Rows() {
		if i >= maxRows {
			break
		}
		out.Append(row...)
	}
	return out
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("file", "f", "", "Path of an experiment YAML file (bypasses name lookup)")
	playCmd.Flags().String("form", game.FormWide, "Results table shape: wide or narrow")
	playCmd.Flags().Int("rolls", 0, "Override the experiment's roll count")
	playCmd.Flags().Int("max_rows", 20, "Maximum result rows to print")
}
