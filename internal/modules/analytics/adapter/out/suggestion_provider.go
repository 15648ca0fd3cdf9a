package out

import (
	"context"
	"encoding/json"
	"fmt"

	"retrolog/internal/modules/analytics/domain"
	analyticsout "retrolog/internal/modules/analytics/port/out"
	suggestdto "retrolog/internal/modules/suggest/dto"
	suggestin "retrolog/internal/modules/suggest/port/in"
)

// SuggestionAdapter forwards aggregate metrics to a suggestion plugin.
type SuggestionAdapter struct {
	suggest    suggestin.Usecase
	pluginName string
}

func NewSuggestionAdapter(suggest suggestin.Usecase, pluginName string) analyticsout.SuggestionProvider {
	return &SuggestionAdapter{suggest: suggest, pluginName: pluginName}
}

func (a *SuggestionAdapter) Suggest(ctx context.Context, kind domain.AnalysisKind, request domain.SuggestionRequest) ([]domain.Suggestion, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode suggestion request: %w", err)
	}
	outputs, err := a.suggest.Suggest(ctx, suggestdto.SuggestInput{
		PluginName:  a.pluginName,
		Kind:        string(kind),
		UserID:      request.UserID,
		MetricsJSON: string(payload),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Suggestion, 0, len(outputs))
	for _, o := range outputs {
		out = append(out, domain.Suggestion{Title: o.Title, Description: o.Description, Plan: o.Plan, Source: o.Source})
	}
	return out, nil
}
