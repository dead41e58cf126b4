/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suderio/dicelab/internal/parser"
	"github.com/suderio/dicelab/internal/table"
)

// rollCmd represents the roll command
var rollCmd = &cobra.Command{
	Use:   "roll [die spec]",
	Short: "Roll a single weighted die from a die spec",
	Long: `Parses a die spec, rolls the die and prints the drawn faces.
Specs:
	dicelab roll d6 --times 10
	dicelab roll "faces: 1 2 3 4 5 6 weights: 1 1 1 1 1 5" --times 100`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		times, _ := cmd.Flags().GetInt("times")
		showState, _ := cmd.Flags().GetBool("state")

		p := parser.Build()
		spec, err := p.ParseString("", args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", parser.MapError(args[0], err))
			os.Exit(1)
		}

		die, err := spec.ToDie()
		if err != nil {
			fmt.Printf("Error building die: %v\n", err)
			os.Exit(1)
		}

		faces, err := die.Roll(times)
		if err != nil {
			fmt.Printf("Error rolling: %v\n", err)
			os.Exit(1)
		}

		rolled := make([]string, len(faces))
		counts := make(map[string]int)
		for i, f := range faces {
			rolled[i] = string(f)
			counts[string(f)]++
		}
		if times <= 20 {
			fmt.Printf("Rolled %d time(s): %s\n", times, strings.Join(rolled, " "))
		} else {
			fmt.Printf("Rolled %d time(s).\n", times)
		}

		if showState {
			state := die.ShowState()
			t := table.New("Face", "Weight", "Hits")
			for _, f := range die.Faces() {
				t.Append(string(f), strconv.FormatFloat(state[f], 'g', -1, 64), strconv.Itoa(counts[string(f)]))
			}
			fmt.Println(t.Render())
		} else if times > 20 {
			// Long runs read better as a tally than as a face stream.
			keys := make([]string, 0, len(counts))
			for k := range counts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			t := table.New("Face", "Hits")
			for _, k := range keys {
				t.Append(k, strconv.Itoa(counts[k]))
			}
			fmt.Println(t.Render())
		}
	},
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rollCmd.Flags().IntP("times", "t", 1, "Number of draws")
	rollCmd.Flags().Bool("state", false, "Also print the die's face/weight state")
}
