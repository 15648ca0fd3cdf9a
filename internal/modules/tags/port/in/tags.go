package in

import (
	"context"

	"retrolog/internal/modules/tags/dto"
)

type SyncItemInput struct {
	ItemID    string
	ItemLabel string
	Tags      []string
}

type RelatedInput struct {
	Tag   string
	Depth int
}

type PathInput struct {
	From string
	To   string
}

type Usecase interface {
	SyncItem(ctx context.Context, input SyncItemInput) error
	Reset(ctx context.Context) error
	ListTags(ctx context.Context, limit int) ([]dto.TagSummaryOutput, error)
	Related(ctx context.Context, input RelatedInput) (dto.RelatedOutput, error)
	Path(ctx context.Context, input PathInput) (dto.PathOutput, error)
}
