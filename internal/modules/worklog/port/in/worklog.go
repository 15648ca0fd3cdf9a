package in

import (
	"context"

	"retrolog/internal/modules/worklog/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.WorkLogOutput, error)
	Log(ctx context.Context, input dto.LogInput) (dto.WorkLogOutput, error)
	GetActive(ctx context.Context) (dto.ActiveOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.WorkLogOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
}
