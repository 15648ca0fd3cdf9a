package out

import (
	"context"

	"retrolog/internal/modules/journal/domain"
)

type SessionStore interface {
	Save(ctx context.Context, document domain.SessionDocument) (string, error)
	FindByID(ctx context.Context, id string) (domain.SessionDocument, error)
	Load(ctx context.Context, notePath string) (domain.SessionDocument, error)
	List(ctx context.Context) ([]domain.SessionDocument, error)
}

type MarkStore interface {
	Save(ctx context.Context, mark domain.Mark) (string, error)
	List(ctx context.Context, userID string) ([]domain.Mark, error)
}

type IndexProjector interface {
	Reset(ctx context.Context) error
	UpsertSession(ctx context.Context, session domain.Session) error
	UpsertMark(ctx context.Context, mark domain.Mark) error
	SessionNote(ctx context.Context, sessionID string) (string, bool, error)
	SessionNotes(ctx context.Context, query domain.RangeQuery) ([]string, error)
	Marks(ctx context.Context, query domain.RangeQuery) ([]domain.Mark, error)
}
