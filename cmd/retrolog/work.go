package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	workloginadapter "retrolog/internal/modules/worklog/adapter/in"
	apperrors "retrolog/internal/platform/errors"
)

func newWorkCmd(flags *globalFlags) *cobra.Command {
	work := &cobra.Command{Use: "work", Short: "Work log timer and entries"}

	var user, category, project string
	var tags []string
	var billable bool
	start := &cobra.Command{
		Use:   "start <title>",
		Short: "Start the work timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.WorkLogCLI.Start(context.Background(), userOr(user, app.Config.User), args[0], category, project, tags, billable)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started %s (%s) at %s\n", out.Title, out.WorkLogID, out.StartedAt.Format("15:04"))
			return nil
		},
	}
	start.Flags().StringVar(&user, "user", "", "user id (default from config)")
	start.Flags().StringVar(&category, "category", "", "category")
	start.Flags().StringVar(&project, "project", "", "project")
	start.Flags().StringSliceVar(&tags, "tags", nil, "tags")
	start.Flags().BoolVar(&billable, "billable", false, "billable time")

	var workLogID, status, description string
	scores := workloginadapter.ScoreArgs{}
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the active work timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.WorkLogCLI.Stop(context.Background(), workLogID, status, description, scores)
			if err != nil {
				return err
			}
			printWorkLogLine(cmd, out.ID, out.Title, out.Status, out.DurationMinutes)
			return nil
		},
	}
	stop.Flags().StringVar(&workLogID, "id", "", "work log id (defaults to active)")
	stop.Flags().StringVar(&status, "status", "", "completed|paused|cancelled (default completed)")
	stop.Flags().StringVar(&description, "description", "", "what was done")
	addScoreFlags(stop, &scores)

	var logUser, logCategory, logProject, logStart, logEnd, logDescription string
	var logTags []string
	var logBillable bool
	logScores := workloginadapter.ScoreArgs{}
	logCmd := &cobra.Command{
		Use:   "log <title>",
		Short: "Record a finished work log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.WorkLogCLI.Log(context.Background(), userOr(logUser, app.Config.User), args[0], logCategory, logProject, logStart, logEnd, logDescription, logTags, logBillable, logScores)
			if err != nil {
				return err
			}
			printWorkLogLine(cmd, out.ID, out.Title, out.Status, out.DurationMinutes)
			return nil
		},
	}
	logCmd.Flags().StringVar(&logUser, "user", "", "user id (default from config)")
	logCmd.Flags().StringVar(&logCategory, "category", "", "category")
	logCmd.Flags().StringVar(&logProject, "project", "", "project")
	logCmd.Flags().StringVar(&logStart, "start", "", "start time RFC3339")
	logCmd.Flags().StringVar(&logEnd, "end", "", "end time RFC3339")
	logCmd.Flags().StringVar(&logDescription, "description", "", "what was done")
	logCmd.Flags().StringSliceVar(&logTags, "tags", nil, "tags")
	logCmd.Flags().BoolVar(&logBillable, "billable", false, "billable time")
	addScoreFlags(logCmd, &logScores)

	active := &cobra.Command{
		Use:   "active",
		Short: "Show the running work timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.WorkLogCLI.GetActive(context.Background())
			if errors.Is(err, apperrors.ErrNoActiveWorkLog) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active work log")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) since %s\n", out.Title, out.WorkLogID, out.StartedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	var listUser, from, to string
	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List work logs in a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			logs, err := app.WorkLogCLI.List(context.Background(), userOr(listUser, app.Config.User), from, to)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), logs)
			}
			if len(logs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no work logs")
				return nil
			}
			for _, l := range logs {
				printWorkLogLine(cmd, l.ID, l.Title, l.Status, l.DurationMinutes)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listUser, "user", "", "user id (default from config)")
	list.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD")
	list.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD")
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	work.AddCommand(start, stop, logCmd, active, list)
	return work
}

func addScoreFlags(cmd *cobra.Command, scores *workloginadapter.ScoreArgs) {
	cmd.Flags().IntVar(&scores.Mood, "mood", 0, "mood score 1..5")
	cmd.Flags().IntVar(&scores.Productivity, "productivity", 0, "productivity score 1..5")
	cmd.Flags().IntVar(&scores.Difficulty, "difficulty", 0, "difficulty score 1..5")
}

func printWorkLogLine(cmd *cobra.Command, id, title, status string, minutes *int) {
	duration := "open"
	if minutes != nil {
		duration = fmt.Sprintf("%dm", *minutes)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s %s\n", id, status, title, duration)
}
