package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSuggestCmd(flags *globalFlags) *cobra.Command {
	suggest := &cobra.Command{Use: "suggest", Short: "AI suggestion providers"}

	suggest.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List suggestion plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			plugins, err := app.SuggestCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n", p.Name, p.Version, p.Enabled, p.Binary, strings.Join(p.Capabilities, ","))
			}
			return nil
		},
	})

	suggest.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			results, err := app.SuggestCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var pluginName, kind, user, metricsJSON string
	run := &cobra.Command{
		Use:   "run",
		Short: "Ask a plugin for suggestions on raw metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.SuggestCLI.Suggest(context.Background(), pluginName, kind, userOr(user, app.Config.User), metricsJSON)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	run.Flags().StringVar(&pluginName, "plugin", "", "plugin name (default first enabled provider)")
	run.Flags().StringVar(&kind, "kind", "comprehensive", "analysis kind")
	run.Flags().StringVar(&user, "user", "", "user id (default from config)")
	run.Flags().StringVar(&metricsJSON, "metrics-json", "{}", "metrics payload")

	suggest.AddCommand(run)
	return suggest
}
