/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dicelab",
	Short: "Monte Carlo laboratory for weighted dice",
	Long: `dicelab simulates repeated rolls of one or more weighted dice and
analyzes the resulting outcome tables: jackpot frequency, per-face counts,
and combination/permutation frequencies over many trials.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dicelab.yaml)")
	rootCmd.PersistentFlags().String("experiments_dir", "", "directory containing experiment YAML files")
	rootCmd.PersistentFlags().String("log_path", "", "path of the run history log")
	viper.BindPFlag("experiments_dir", rootCmd.PersistentFlags().Lookup("experiments_dir"))
	viper.BindPFlag("log_path", rootCmd.PersistentFlags().Lookup("log_path"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dicelab")
	}

	viper.SetEnvPrefix("DICELAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// experimentDirs resolves the experiment search hierarchy: the configured
// directory first, then ./experiments, then the working directory itself.
func experimentDirs() []string {
	var dirs []string
	if dir := viper.GetString("experiments_dir"); dir != "" {
		dirs = append(dirs, dir)
	}
	cwd, err := os.Getwd()
	if err == nil {
		dirs = append(dirs, filepath.Join(cwd, "experiments"), cwd)
	}
	return dirs
}

// runLogPath resolves where run records are appended.
func runLogPath() string {
	if path := viper.GetString("log_path"); path != "" {
		return path
	}
	return "dicelab_runs.jsonl"
}
