package usecase

import (
	"context"

	"retrolog/internal/modules/suggest/dto"
	suggestin "retrolog/internal/modules/suggest/port/in"
	"retrolog/internal/modules/suggest/service"
)

type Interactor struct {
	svc *service.SuggestService
}

func NewInteractor(svc *service.SuggestService) suggestin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Suggest(ctx context.Context, input dto.SuggestInput) ([]dto.SuggestionOutput, error) {
	return i.svc.Suggest(ctx, input)
}
