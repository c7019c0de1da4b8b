package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	projectCreator int64
	projectID      int64
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect projects",
	Long: `Read-only views of projects and their tasks.

Examples:
  taskctl project list --creator 1
  taskctl project tasks --id 3`,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the projects created by a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectCreator <= 0 {
			return fmt.Errorf("--creator must be a positive user id")
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		projects, err := s.tracker.ListProjectsByCreator(ctx, projectCreator)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if done, err := printJSON(w, projects); done {
			return err
		}
		if len(projects) == 0 {
			fmt.Fprintln(w, "No projects found.")
			return nil
		}

		fmt.Fprintf(w, "\n%-6s  %-30s  %s\n", "ID", "NAME", "CREATED")
		printRule(w, 60)
		for _, p := range projects {
			fmt.Fprintf(w, "%-6d  %-30s  %s\n", p.ID, p.Name, formatTime(p.CreatedAt))
		}
		fmt.Fprintf(w, "\nTotal: %d project(s)\n", len(projects))
		return nil
	},
}

var projectTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the tasks of a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectID <= 0 {
			return fmt.Errorf("--id must be a positive project id")
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		tasks, err := s.tracker.ListProjectTasks(ctx, projectID)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if done, err := printJSON(w, tasks); done {
			return err
		}
		if len(tasks) == 0 {
			fmt.Fprintln(w, "No tasks found.")
			return nil
		}

		fmt.Fprintf(w, "\n%-6s  %-30s  %-6s  %-6s\n", "ID", "NAME", "OWNER", "STATUS")
		printRule(w, 56)
		for _, t := range tasks {
			fmt.Fprintf(w, "%-6d  %-30s  %-6d  %-6d\n", t.ID, t.Name, t.OwnerID, t.StatusID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectTasksCmd)

	projectListCmd.Flags().Int64Var(&projectCreator, "creator", 0, "creator user id (required)")
	projectListCmd.MarkFlagRequired("creator")
	projectTasksCmd.Flags().Int64Var(&projectID, "id", 0, "project id (required)")
	projectTasksCmd.MarkFlagRequired("id")
}
