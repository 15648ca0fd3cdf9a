package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTagsCmd(flags *globalFlags) *cobra.Command {
	tags := &cobra.Command{Use: "tags", Short: "Tag graph queries"}

	var limit int
	top := &cobra.Command{
		Use:   "top",
		Short: "Most used tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.TagsCLI.ListTags(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tags")
				return nil
			}
			for _, t := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-24s %d\n", t.Tag, t.ItemCount)
			}
			return nil
		},
	}
	top.Flags().IntVar(&limit, "limit", 10, "number of tags")

	var depth int
	related := &cobra.Command{
		Use:   "related <tag>",
		Short: "Tags that co-occur with a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.TagsCLI.Related(context.Background(), args[0], depth)
			if err != nil {
				return err
			}
			if len(out.Related) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no tags related to %s\n", out.Tag)
				return nil
			}
			for _, r := range out.Related {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-24s distance=%d shared=%d\n", r.Tag, r.Distance, r.Shared)
			}
			return nil
		},
	}
	related.Flags().IntVar(&depth, "depth", 1, "graph depth")

	path := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Shortest co-occurrence path between two tags",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			out, err := app.TagsCLI.Path(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			if !out.Found {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no path from %s to %s\n", out.From, out.To)
				return nil
			}
			labels := make([]string, 0, len(out.Nodes))
			for _, n := range out.Nodes {
				labels = append(labels, n.Label)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(labels, " -> "))
			return nil
		},
	}

	tags.AddCommand(top, related, path)
	return tags
}
