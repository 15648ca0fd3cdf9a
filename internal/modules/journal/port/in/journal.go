package in

import (
	"context"

	"retrolog/internal/modules/journal/dto"
)

type Usecase interface {
	CreateSession(ctx context.Context, input dto.CreateSessionInput) (dto.SessionOutput, error)
	GetSession(ctx context.Context, id string) (dto.SessionOutput, error)
	ListSessions(ctx context.Context, input dto.ListSessionsInput) ([]dto.SessionOutput, error)
	SetSessionStatus(ctx context.Context, input dto.SetSessionStatusInput) (dto.SessionOutput, error)
	AddItem(ctx context.Context, input dto.AddItemInput) (dto.ItemOutput, error)
	CompleteItem(ctx context.Context, input dto.CompleteItemInput) (dto.ItemOutput, error)
	LinkWorkLog(ctx context.Context, input dto.LinkWorkLogInput) (dto.ItemOutput, error)
	SetMark(ctx context.Context, input dto.SetMarkInput) (dto.MarkOutput, error)
	ListMarks(ctx context.Context, input dto.ListMarksInput) ([]dto.MarkOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
}
