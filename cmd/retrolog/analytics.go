package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	analyticsinadapter "retrolog/internal/modules/analytics/adapter/in"
	"retrolog/internal/modules/analytics/dto"
)

type rangeFlags struct {
	args   analyticsinadapter.RangeArgs
	asJSON bool
}

func (f *rangeFlags) bind(cmd *cobra.Command, withGranularity bool) {
	cmd.Flags().StringVar(&f.args.UserID, "user", "", "user id (default from config)")
	cmd.Flags().StringVar(&f.args.From, "from", "", "first day YYYY-MM-DD (default 30 days ago)")
	cmd.Flags().StringVar(&f.args.To, "to", "", "last day YYYY-MM-DD (default today)")
	if withGranularity {
		cmd.Flags().StringVar(&f.args.Granularity, "granularity", "", "day|week|month|quarter|year")
	}
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON")
}

// analyticsCommand builds a read-only analytics subcommand that prints JSON
// or a text rendering.
func analyticsCommand[T any](flags *globalFlags, use, short string, withGranularity bool,
	run func(analyticsinadapter.CLIHandler, context.Context, analyticsinadapter.RangeArgs) (T, error),
	render func(io.Writer, T),
) *cobra.Command {
	rf := &rangeFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := run(app.AnalyticsCLI, context.Background(), rf.args)
			if err != nil {
				return err
			}
			if rf.asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			render(cmd.OutOrStdout(), out)
			return nil
		},
	}
	rf.bind(cmd, withGranularity)
	return cmd
}

func newAnalyticsCmd(flags *globalFlags) *cobra.Command {
	analytics := &cobra.Command{Use: "analytics", Short: "Retrospective analytics"}
	analytics.AddCommand(
		analyticsCommand(flags, "dashboard", "Period summary, streaks and recommendations", false, analyticsinadapter.CLIHandler.Dashboard, renderDashboard),
		analyticsCommand(flags, "streaks", "Current and longest reflection streaks", false, analyticsinadapter.CLIHandler.Streaks, renderStreaks),
		analyticsCommand(flags, "calendar", "Per-day activity", false, analyticsinadapter.CLIHandler.Calendar, renderCalendar),
		analyticsCommand(flags, "charts", "Bucketed counts and score series", true, analyticsinadapter.CLIHandler.Charts, renderCharts),
		analyticsCommand(flags, "worklog-stats", "Work log totals and series", true, analyticsinadapter.CLIHandler.WorkLogStats, renderWorkLogStats),
		analyticsCommand(flags, "patterns", "Recurring themes and success/problem patterns", false, analyticsinadapter.CLIHandler.Patterns, renderPatterns),
		analyticsCommand(flags, "recommendations", "Rule-based recommendations", false, analyticsinadapter.CLIHandler.Recommendations, renderRecommendations),
	)
	return analytics
}

func newInsightCmd(flags *globalFlags) *cobra.Command {
	insight := &cobra.Command{Use: "insight", Short: "Generated insights"}

	rf := &rangeFlags{}
	var preview, suggestions bool
	var sessionID string
	generate := &cobra.Command{
		Use:   "generate <emotion|productivity|pattern|comprehensive>",
		Short: "Assemble and store an insight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.AnalyticsCLI.GenerateInsight(context.Background(), rf.args, args[0], !preview, suggestions, sessionID)
			if err != nil {
				return err
			}
			if rf.asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			renderInsight(cmd.OutOrStdout(), out)
			return nil
		},
	}
	rf.bind(generate, false)
	generate.Flags().BoolVar(&preview, "preview", false, "do not store the insight")
	generate.Flags().BoolVar(&suggestions, "suggestions", false, "ask the suggestion plugin (comprehensive only)")
	generate.Flags().StringVar(&sessionID, "session", "", "attach to a session id")

	var user, insightType string
	var activeOnly, asJSON bool
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored insights, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.AnalyticsCLI.ListInsights(context.Background(), user, insightType, activeOnly, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no insights")
				return nil
			}
			for _, i := range out {
				renderInsight(cmd.OutOrStdout(), i)
			}
			return nil
		},
	}
	list.Flags().StringVar(&user, "user", "", "user id (default from config)")
	list.Flags().StringVar(&insightType, "type", "", "summary|sentiment|trend|recommendation|pattern")
	list.Flags().BoolVar(&activeOnly, "active", false, "only active insights")
	list.Flags().IntVar(&limit, "limit", 20, "maximum insights (0 for all)")
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	setActive := func(use, short string, active bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <insight-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := loadApp(flags)
				if err != nil {
					return err
				}
				out, err := app.AnalyticsCLI.SetInsightActive(context.Background(), args[0], active)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "insight %s active=%t\n", out.ID, out.Active)
				return nil
			},
		}
	}

	insight.AddCommand(generate, list, setActive("archive", "Hide an insight", false), setActive("restore", "Show an archived insight again", true))
	return insight
}

func renderDashboard(w io.Writer, d dto.DashboardOutput) {
	p := d.Period
	_, _ = fmt.Fprintf(w, "%s .. %s (%d days)\n", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"), p.Days)
	_, _ = fmt.Fprintf(w, "sessions      %d (%.1f%% completed)\n", p.SessionsCount, p.SessionCompletionRate)
	_, _ = fmt.Fprintf(w, "items         %d (%.1f%% completed)\n", p.ItemsCount, p.ItemCompletionRate)
	_, _ = fmt.Fprintf(w, "reflection    %.1f%% of days, %d marks\n", p.ReflectionFrequencyRate, p.MarksCount)
	_, _ = fmt.Fprintf(w, "emotion       %s (%s)\n", formatScore(p.AverageEmotion), d.Trends.Emotion)
	_, _ = fmt.Fprintf(w, "impact        %s (%s)\n", formatScore(p.AverageImpact), d.Trends.Impact)
	_, _ = fmt.Fprintf(w, "productivity  %s via %s (%s)\n", formatScore(d.Productivity), d.ProductivitySource, d.Trends.Productivity)
	_, _ = fmt.Fprintf(w, "streak        %d days (longest %d)\n", d.Streak.Current, d.Streak.LongestFullHistory)
	if d.WorkLogsAvailable {
		_, _ = fmt.Fprintf(w, "work          %d logs, %s\n", d.Work.Count, d.Work.TotalFormatted)
	}
	renderRecommendations(w, d.Recommendations)
}

func renderStreaks(w io.Writer, s dto.StreakOutput) {
	_, _ = fmt.Fprintf(w, "as of %s: current %d, longest %d, longest ever %d\n", s.ReferenceDate.Format("2006-01-02"), s.Current, s.Longest, s.LongestFullHistory)
}

func renderCalendar(w io.Writer, days []dto.CalendarDayOutput) {
	for _, d := range days {
		if !d.Active && d.WorkMinutes == 0 {
			continue
		}
		line := fmt.Sprintf("%s sessions=%d items=%d/%d work=%dm", d.Date.Format("2006-01-02 Mon"), d.Sessions, d.CompletedItems, d.Items, d.WorkMinutes)
		if d.Mark != nil {
			line += fmt.Sprintf(" mark=%s", d.Mark.Type)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

func renderCharts(w io.Writer, c dto.ChartsOutput) {
	_, _ = fmt.Fprintf(w, "%-12s %8s %8s %8s %8s\n", string(c.Granularity), "items", "emotion", "impact", "product.")
	for i, b := range c.Items {
		_, _ = fmt.Fprintf(w, "%-12s %8d %8s %8s %8s\n", b.Label, b.Total, pointAt(c.Emotion, i), pointAt(c.Impact, i), pointAt(c.Productivity, i))
	}
	_, _ = fmt.Fprintf(w, "trends: emotion %s, impact %s, productivity %s\n", c.Trends.Emotion, c.Trends.Impact, c.Trends.Productivity)
}

func renderWorkLogStats(w io.Writer, s dto.WorkLogStatsOutput) {
	if !s.Available {
		_, _ = fmt.Fprintln(w, "work logs are not tracked")
		return
	}
	sum := s.Summary
	_, _ = fmt.Fprintf(w, "%d logs, %s total, %.0fm average, %.1f%% long sessions\n", sum.Count, sum.TotalFormatted, sum.AverageMinutes, sum.LongSessionShare)
	_, _ = fmt.Fprintf(w, "mood %s, productivity %s, difficulty %s\n", formatScore(sum.AverageMood), formatScore(sum.AverageProductivity), formatScore(sum.AverageDifficulty))
	for _, c := range sum.ByCategory {
		_, _ = fmt.Fprintf(w, "  %-20s %s (%d)\n", c.Name, c.Formatted, c.Count)
	}
}

func renderPatterns(w io.Writer, p dto.PatternsOutput) {
	themes := make([]string, 0, len(p.RecurringThemes))
	for _, t := range p.RecurringThemes {
		themes = append(themes, fmt.Sprintf("%s(%d)", t.Tag, t.Count))
	}
	_, _ = fmt.Fprintf(w, "themes: %s\n", strings.Join(themes, " "))
	for _, s := range p.SuccessPatterns {
		_, _ = fmt.Fprintf(w, "success  %-8s completed=%d impact=%s %s\n", s.Category, s.CompletedCount, formatScore(s.AverageImpact), s.Classification)
	}
	for _, pr := range p.ProblemPatterns {
		_, _ = fmt.Fprintf(w, "problem  %-8s overdue=%d emotion=%s\n", pr.Category, pr.OverdueCount, formatScore(pr.AverageEmotion))
	}
}

func renderRecommendations(w io.Writer, recs []dto.RecommendationOutput) {
	for _, r := range recs {
		_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", r.Priority, r.Title, r.Description)
		for _, a := range r.Actions {
			_, _ = fmt.Fprintf(w, "    - %s\n", a)
		}
	}
}

func renderInsight(w io.Writer, i dto.InsightOutput) {
	state := "active"
	if !i.Active {
		state = "archived"
	}
	_, _ = fmt.Fprintf(w, "%s %s %s confidence=%.2f %s..%s %s\n", i.ID, i.Kind, state, i.Confidence,
		i.PeriodStart.Format("2006-01-02"), i.PeriodEnd.Format("2006-01-02"), i.DataSource)
}

func formatScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func pointAt(series []dto.SeriesPoint, i int) string {
	if i >= len(series) {
		return "-"
	}
	return formatScore(series[i].Average)
}
