package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var insightCmd = &cobra.Command{
	Use:   "insight [number]",
	Short: "Ask the model about one task",
	Long: `Fetches AI-generated detail for one task: an estimated duration,
dependencies, notes, and optional sub-tasks. When the model is unreachable
a placeholder insight is shown instead of an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, insights, err := buildApp()
		if err != nil {
			return err
		}

		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("expected a task number, got: %s", args[0])
		}

		tasks := session.Tasks()
		if n < 1 || n > len(tasks) {
			return fmt.Errorf("invalid task number: %d (must be between 1 and %d)", n, len(tasks))
		}

		texts := make([]string, len(tasks))
		for i, t := range tasks {
			texts[i] = t.Text
		}

		ins := insights.Request(context.Background(), tasks[n-1].Text, texts)

		fmt.Printf("Task:           %s\n", tasks[n-1].Text)
		fmt.Printf("Estimated time: %s\n", ins.EstimatedTimeToComplete)
		fmt.Printf("Dependencies:   %s\n", ins.PotentialDependencies)
		fmt.Printf("Notes:          %s\n", ins.AdditionalNotes)
		if len(ins.SubTasks) > 0 {
			fmt.Println("Sub-tasks:")
			for _, st := range ins.SubTasks {
				fmt.Printf("  - %s\n", st)
			}
		}
		return nil
	},
}
