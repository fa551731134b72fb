package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var flagPrintDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the snake configuration",
	Long: `Print the snake configuration as YAML.

Without flags this is the configuration a game would start with after the
config search order and --difficulty are applied. --print-default prints the
built-in file, a starting point for ~/.arcade/snake.yaml.

Examples:
  arcade config
  arcade config --difficulty hard
  arcade config --print-default > ~/.arcade/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagPrintDefault, "print-default", false, "Print the built-in default config")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagPrintDefault {
		_, err := cmd.OutOrStdout().Write(config.GetDefaultYAML(snake.IDClassic))
		return err
	}

	if err := applyGameFlags(); err != nil {
		return err
	}
	out, err := yaml.Marshal(snake.LoadConfig())
	if err != nil {
		return fmt.Errorf("config: cannot encode: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
