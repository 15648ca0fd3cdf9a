package service

import (
	"context"
	"strings"

	"retrolog/internal/modules/tags/domain"
	tagsout "retrolog/internal/modules/tags/port/out"
	"retrolog/internal/platform/slug"
)

const maxRelatedDepth = 4

type TagService struct {
	notes tagsout.TagNoteStore
	index tagsout.TagIndex
}

func NewTagService(notes tagsout.TagNoteStore, index tagsout.TagIndex) *TagService {
	return &TagService{notes: notes, index: index}
}

// SyncItem links an item to its tags in the vault and replaces its edges in
// the index.
func (s *TagService) SyncItem(ctx context.Context, itemID, itemLabel string, tags []string) error {
	normalized := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, raw := range tags {
		tag := slug.Tag(raw)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
		if err := s.notes.AppendItemLink(ctx, tag, itemLabel, itemID); err != nil {
			return err
		}
	}
	return s.index.ReplaceItemTags(ctx, itemID, itemLabel, normalized)
}

func (s *TagService) Reset(ctx context.Context) error {
	return s.index.Reset(ctx)
}

func (s *TagService) ListTags(ctx context.Context, limit int) ([]domain.TagSummary, error) {
	return s.index.ListTags(ctx, limit)
}

func (s *TagService) Related(ctx context.Context, tag string, depth int) ([]domain.RelatedTag, int, error) {
	if depth < 1 {
		depth = 1
	}
	if depth > maxRelatedDepth {
		depth = maxRelatedDepth
	}
	related, err := s.index.Related(ctx, slug.Tag(tag), depth)
	if err != nil {
		return nil, 0, err
	}
	return related, depth, nil
}

func (s *TagService) ShortestPath(ctx context.Context, fromTag, toTag string) ([]domain.Node, error) {
	return s.index.ShortestPath(ctx, slug.Tag(strings.TrimSpace(fromTag)), slug.Tag(strings.TrimSpace(toTag)))
}
