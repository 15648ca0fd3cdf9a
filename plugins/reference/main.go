package main

import (
	"context"
	"encoding/json"
	"fmt"

	suggestrpc "retrolog/internal/modules/suggest/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// metrics is the subset of the analytics payload this provider reads.
type metrics struct {
	Summary struct {
		CompletionRate          float64        `json:"completion_rate"`
		ReflectionFrequencyRate float64        `json:"reflection_frequency_rate"`
		CategoryCounts          map[string]int `json:"category_counts"`
	} `json:"summary"`
	RecurringThemes []struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	} `json:"recurring_themes"`
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *suggestrpc.Empty) (*suggestrpc.Metadata, error) {
	return &suggestrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"suggest"},
	}, nil
}

// Suggest answers deterministically from the aggregate figures so the host
// can be exercised without a model behind it.
func (s *server) Suggest(_ context.Context, in *suggestrpc.SuggestRequest) (*suggestrpc.SuggestResponse, error) {
	m := metrics{}
	if err := json.Unmarshal([]byte(in.MetricsJSON), &m); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	out := []suggestrpc.Suggestion{}
	if m.Summary.ReflectionFrequencyRate < 50 {
		out = append(out, suggestrpc.Suggestion{
			Title:       "Make reflection a daily habit",
			Description: fmt.Sprintf("You reflected on %.0f%% of days in this period.", m.Summary.ReflectionFrequencyRate),
			Plan:        []string{"Pick a fixed five-minute slot", "Leave a mark even on quiet days"},
		})
	}
	if m.Summary.CompletionRate < 50 {
		out = append(out, suggestrpc.Suggestion{
			Title:       "Shrink the next batch of tries",
			Description: fmt.Sprintf("Only %.0f%% of items were completed.", m.Summary.CompletionRate),
			Plan:        []string{"Carry at most three tries into the next session", "Split any try that spans more than a week"},
		})
	}
	if len(m.RecurringThemes) > 0 {
		theme := m.RecurringThemes[0]
		out = append(out, suggestrpc.Suggestion{
			Title:       fmt.Sprintf("Dig into #%s", theme.Tag),
			Description: fmt.Sprintf("#%s came up %d times.", theme.Tag, theme.Count),
			Plan:        []string{fmt.Sprintf("Write one root-cause note about #%s", theme.Tag), "Turn it into a single concrete try"},
		})
	}
	if len(out) == 0 {
		out = append(out, suggestrpc.Suggestion{
			Title:       "Keep the current rhythm",
			Description: "Nothing in the figures needs attention.",
			Plan:        []string{"Review this period again next week"},
		})
	}
	return &suggestrpc.SuggestResponse{Suggestions: out}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: suggestrpc.HandshakeConfig,
		Plugins:         suggestrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
