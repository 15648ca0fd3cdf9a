package in

import (
	"context"

	"retrolog/internal/modules/suggest/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Suggest(ctx context.Context, input dto.SuggestInput) ([]dto.SuggestionOutput, error)
}
