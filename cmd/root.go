package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskmuse/config"
	"taskmuse/insight"
	"taskmuse/intent"
	"taskmuse/llm"
	"taskmuse/store"
	"taskmuse/task"
	"taskmuse/tui"
)

var rootCmd = &cobra.Command{
	Use:   "taskmuse",
	Short: "Taskmuse is an AI-driven to-do list for the terminal",
	Long: `Taskmuse is a terminal to-do list whose commands are understood by a
hosted language model. Type what you need in plain language and it adds,
clears, completes, or counts tasks for you.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, classifier, insights, err := buildApp()
		if err != nil {
			return err
		}
		return tui.Start(session, classifier, insights)
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	log.SetLevel(log.WarnLevel)
	if os.Getenv("TASKMUSE_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(configCmd)
}

// buildApp wires config, store, session, and the LLM-backed services
func buildApp() (*task.Session, *intent.Classifier, *insight.Requester, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.NewStore(cfg.StorePath)
	if err != nil {
		return nil, nil, nil, err
	}

	session := task.NewSession(st.Load(), st)

	adapter, err := llm.CreateAdapter(cfg.Model, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	return session, intent.NewClassifier(adapter), insight.NewRequester(adapter), nil
}

// buildSession wires only the local pieces, for commands that never talk
// to the model.
func buildSession() (*task.Session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.NewStore(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	return task.NewSession(st.Load(), st), nil
}
