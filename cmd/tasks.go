package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [task]...",
	Short: "Add tasks directly, without the model",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}

		created := session.AddTasks(args)
		for _, t := range created {
			fmt.Printf("  + %s\n", t.Text)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the task list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}

		tasks := session.Tasks()
		if len(tasks) == 0 {
			fmt.Println("Nothing to do.")
			return nil
		}

		for i, t := range tasks {
			marker := "[ ]"
			if t.Completed {
				marker = "[x]"
			}
			fmt.Printf("%3d. %s %s\n", i+1, marker, t.Text)
		}
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}

		if session.ClearAll() {
			fmt.Println("All tasks cleared.")
		} else {
			fmt.Println("Your list is already empty.")
		}
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done [number]",
	Short: "Mark one task done, or everything with no argument",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			switch {
			case len(session.Tasks()) == 0:
				fmt.Println("There are no tasks to complete.")
			case session.CompleteAll():
				fmt.Println("All tasks marked as complete.")
			default:
				fmt.Println("Everything was already done.")
			}
			return nil
		}

		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("expected a task number, got: %s", args[0])
		}

		tasks := session.Tasks()
		if n < 1 || n > len(tasks) {
			return fmt.Errorf("invalid task number: %d (must be between 1 and %d)", n, len(tasks))
		}

		session.Toggle(tasks[n-1].ID)
		if tasks[n-1].Completed {
			fmt.Printf("Reopened: %s\n", tasks[n-1].Text)
		} else {
			fmt.Printf("Done: %s\n", tasks[n-1].Text)
		}
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count [total|remaining|completed]",
	Short: "Report task counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}

		subtype := "total"
		if len(args) == 1 {
			subtype = args[0]
		}
		fmt.Println(session.QueryCount(subtype))
		return nil
	},
}
