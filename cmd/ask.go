package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskmuse/intent"
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message through the intent engine",
	Long: `Classifies a free-form message and applies the resulting action to the
task list: adding tasks, clearing the list, completing everything, or
answering a count question.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, classifier, _, err := buildApp()
		if err != nil {
			return err
		}

		message := strings.Join(args, " ")
		total, _, _ := session.Counts()

		seq := session.BeginRequest()
		res, err := classifier.Classify(context.Background(), message, total)
		if err != nil {
			res = intent.FallbackResult()
		}

		feedback, _ := session.ApplyClassification(seq, res)
		fmt.Println(feedback)

		if res.Action == intent.ActionAddTasks && len(res.TaskList) > 0 {
			for _, t := range res.TaskList {
				fmt.Printf("  + %s\n", t)
			}
		}
		return nil
	},
}
