package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	journalinadapter "retrolog/internal/modules/journal/adapter/in"
	"retrolog/internal/modules/journal/dto"
)

func newSessionCmd(flags *globalFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Retrospective sessions"}

	var user, description, date, status string
	var tags []string
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.JournalCLI.CreateSession(context.Background(), userOr(user, app.Config.User), args[0], description, date, status, tags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created session %s (%s) note=%s\n", out.Title, out.ID, out.NotePath)
			return nil
		},
	}
	create.Flags().StringVar(&user, "user", "", "user id (default from config)")
	create.Flags().StringVar(&description, "description", "", "session description")
	create.Flags().StringVar(&date, "date", "", "session date YYYY-MM-DD (default today)")
	create.Flags().StringVar(&status, "status", "", "not_started|in_progress|completed|pending")
	create.Flags().StringSliceVar(&tags, "tags", nil, "tags")

	var asJSON bool
	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.JournalCLI.GetSession(context.Background(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			printSession(cmd.OutOrStdout(), out)
			return nil
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	var listUser, from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions in a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			sessions, err := app.JournalCLI.ListSessions(context.Background(), userOr(listUser, app.Config.User), from, to)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), sessions)
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%s] %s items=%d\n", s.Date.Format("2006-01-02"), s.ID, s.Status, s.Title, len(s.Items))
			}
			return nil
		},
	}
	list.Flags().StringVar(&listUser, "user", "", "user id (default from config)")
	list.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD")
	list.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD")
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	statusCmd := &cobra.Command{
		Use:   "status <session-id> <status>",
		Short: "Change a session status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.JournalCLI.SetSessionStatus(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s is %s\n", out.ID, out.Status)
			return nil
		},
	}

	session.AddCommand(create, show, list, statusCmd)
	return session
}

func newItemCmd(flags *globalFlags) *cobra.Command {
	item := &cobra.Command{Use: "item", Short: "Session items (keep, problem, try)"}

	args := journalinadapter.ItemArgs{}
	add := &cobra.Command{
		Use:   "add <session-id> <category> <content>",
		Short: "Add an item to a session",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, positional []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			args.SessionID, args.Category, args.Content = positional[0], positional[1], positional[2]
			out, err := app.JournalCLI.AddItem(context.Background(), args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s item %s\n", out.Category, out.ID)
			return nil
		},
	}
	add.Flags().StringVar(&args.Due, "due", "", "due date YYYY-MM-DD")
	add.Flags().StringVar(&args.Start, "start", "", "start date YYYY-MM-DD")
	add.Flags().StringVar(&args.End, "end", "", "end date YYYY-MM-DD")
	add.Flags().IntVar(&args.Emotion, "emotion", 0, "emotion score 1..5")
	add.Flags().IntVar(&args.Impact, "impact", 0, "impact score 1..5")
	add.Flags().StringVar(&args.Priority, "priority", "", "low|medium|high")
	add.Flags().StringSliceVar(&args.Tags, "tags", nil, "tags")
	add.Flags().StringVar(&args.Assignee, "assignee", "", "assignee")
	add.Flags().StringVar(&args.Notes, "notes", "", "notes")

	var reopen bool
	complete := &cobra.Command{
		Use:   "complete <session-id> <item-id>",
		Short: "Mark an item done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, positional []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.JournalCLI.CompleteItem(context.Background(), positional[0], positional[1], !reopen)
			if err != nil {
				return err
			}
			state := "done"
			if out.CompletedAt == nil {
				state = "open"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "item %s is %s\n", out.ID, state)
			return nil
		},
	}
	complete.Flags().BoolVar(&reopen, "reopen", false, "clear the completion instead")

	var relevance int
	var notes string
	link := &cobra.Command{
		Use:   "link <session-id> <item-id> <work-log-id>",
		Short: "Link an item to a work log",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, positional []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.JournalCLI.LinkWorkLog(context.Background(), positional[0], positional[1], positional[2], relevance, notes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "item %s links %d work logs\n", out.ID, len(out.Links))
			return nil
		},
	}
	link.Flags().IntVar(&relevance, "relevance", 0, "relevance 1..5")
	link.Flags().StringVar(&notes, "notes", "", "link notes")

	item.AddCommand(add, complete, link)
	return item
}

func newMarkCmd(flags *globalFlags) *cobra.Command {
	mark := &cobra.Command{Use: "mark", Short: "Reflection day marks"}

	var user, note, markType string
	set := &cobra.Command{
		Use:   "set <date>",
		Short: "Mark a day (replaces an existing mark)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.JournalCLI.SetMark(context.Background(), userOr(user, app.Config.User), args[0], note, markType)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "marked %s note=%s\n", out.Date.Format("2006-01-02"), out.NotePath)
			return nil
		},
	}
	set.Flags().StringVar(&user, "user", "", "user id (default from config)")
	set.Flags().StringVar(&note, "note", "", "mark note")
	set.Flags().StringVar(&markType, "type", "", "mark type")

	var listUser, from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List marks in a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			marks, err := app.JournalCLI.ListMarks(context.Background(), userOr(listUser, app.Config.User), from, to)
			if err != nil {
				return err
			}
			if len(marks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no marks")
				return nil
			}
			for _, m := range marks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", m.Date.Format("2006-01-02"), m.Type, m.Note)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listUser, "user", "", "user id (default from config)")
	list.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD")
	list.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD")

	mark.AddCommand(set, list)
	return mark
}

func printSession(w io.Writer, s dto.SessionOutput) {
	_, _ = fmt.Fprintf(w, "%s  %s  [%s]\n", s.Date.Format("2006-01-02"), s.Title, s.Status)
	if len(s.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "tags: %s\n", strings.Join(s.Tags, ", "))
	}
	for _, item := range s.Items {
		check := " "
		if item.CompletedAt != nil {
			check = "x"
		}
		_, _ = fmt.Fprintf(w, "- [%s] %-7s %s (%s)\n", check, item.Category, item.Content, item.ID)
	}
}

func userOr(user, fallback string) string {
	if strings.TrimSpace(user) == "" {
		return fallback
	}
	return user
}
