package in

import (
	"context"

	"retrolog/internal/modules/suggest/dto"
	suggestin "retrolog/internal/modules/suggest/port/in"
)

type CLIHandler struct {
	usecase suggestin.Usecase
}

func NewCLIHandler(usecase suggestin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Suggest(ctx context.Context, pluginName, kind, userID, metricsJSON string) ([]dto.SuggestionOutput, error) {
	return h.usecase.Suggest(ctx, dto.SuggestInput{PluginName: pluginName, Kind: kind, UserID: userID, MetricsJSON: metricsJSON})
}
