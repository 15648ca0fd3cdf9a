package out

import (
	"context"

	"retrolog/internal/modules/suggest/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Suggest(ctx context.Context, manifest domain.Manifest, request domain.Request) ([]domain.Suggestion, error)
}
