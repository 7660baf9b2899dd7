// Package main implements the taskman terminal to-do list manager.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskman/internal/config"
	"taskman/internal/export"
	"taskman/internal/task"
	"taskman/internal/ui"
)

var (
	flagConfig string
	flagData   string
)

var rootCmd = &cobra.Command{
	Use:   "taskman",
	Short: "A terminal to-do list manager",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
	// Errors are printed once in main.
	SilenceUsage:  true,
	SilenceErrors: true,
}

var exportCmd = &cobra.Command{
	Use:   "export <id> <path>",
	Short: "Export a single task to a file (.json for JSON, otherwise plain text)",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "task data file path")
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskman: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if flagData != "" {
		cfg.DataPath = flagData
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if os.Getenv("TASKMAN_DEBUG") != "" {
		f, err := tea.LogToFile("taskman-debug.log", "debug")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	}

	status := ""
	store, err := task.Open(cfg.DataPath)
	if err != nil {
		if !errors.Is(err, task.ErrCorruptFile) {
			return err
		}
		// Recoverable: warn and start empty, leaving the file untouched.
		status = "Could not read data file; starting with an empty list."
	}

	return ui.Run(store, cfg, status)
}

func runExport(cmd *cobra.Command, args []string) error {
	id, path := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tasks, err := task.Load(cfg.DataPath)
	if err != nil {
		return err
	}

	for _, t := range tasks {
		if t.ID == id && !t.Deleted {
			if err := export.ToFile(path, t); err != nil {
				return err
			}
			fmt.Printf("Exported task %s to %s\n", id, path)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
}
