package out

import (
	"context"

	"retrolog/internal/modules/worklog/domain"
)

type WorkLogStore interface {
	Save(ctx context.Context, log domain.WorkLog) (string, error)
	List(ctx context.Context) ([]domain.WorkLog, error)
}

type ActiveWorkLogStore interface {
	SaveActive(ctx context.Context, active domain.ActiveWorkLog) error
	LoadActive(ctx context.Context) (domain.ActiveWorkLog, error)
	ClearActive(ctx context.Context) error
}

type WorkLogProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, log domain.WorkLog) error
	List(ctx context.Context, query domain.ListQuery) ([]domain.WorkLog, error)
}
