package out

import (
	"context"

	"retrolog/internal/modules/tags/domain"
)

type TagNoteStore interface {
	AppendItemLink(ctx context.Context, tag, itemLabel, itemID string) error
}

type TagIndex interface {
	Reset(ctx context.Context) error
	ReplaceItemTags(ctx context.Context, itemID, itemLabel string, tags []string) error
	ListTags(ctx context.Context, limit int) ([]domain.TagSummary, error)
	Related(ctx context.Context, tag string, depth int) ([]domain.RelatedTag, error)
	ShortestPath(ctx context.Context, fromTag, toTag string) ([]domain.Node, error)
}
