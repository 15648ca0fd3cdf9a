package usecase

import (
	"context"

	"retrolog/internal/modules/tags/domain"
	"retrolog/internal/modules/tags/dto"
	tagsin "retrolog/internal/modules/tags/port/in"
	"retrolog/internal/modules/tags/service"
)

type Interactor struct {
	svc *service.TagService
}

func NewInteractor(svc *service.TagService) tagsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SyncItem(ctx context.Context, input tagsin.SyncItemInput) error {
	return i.svc.SyncItem(ctx, input.ItemID, input.ItemLabel, input.Tags)
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func (i *Interactor) ListTags(ctx context.Context, limit int) ([]dto.TagSummaryOutput, error) {
	tags, err := i.svc.ListTags(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TagSummaryOutput, 0, len(tags))
	for _, tag := range tags {
		out = append(out, dto.TagSummaryOutput{Tag: tag.Tag, ItemCount: tag.ItemCount})
	}
	return out, nil
}

func (i *Interactor) Related(ctx context.Context, input tagsin.RelatedInput) (dto.RelatedOutput, error) {
	related, depth, err := i.svc.Related(ctx, input.Tag, input.Depth)
	if err != nil {
		return dto.RelatedOutput{}, err
	}
	out := dto.RelatedOutput{Tag: input.Tag, Depth: depth, Related: make([]dto.RelatedTagOutput, 0, len(related))}
	for _, tag := range related {
		out.Related = append(out.Related, dto.RelatedTagOutput{Tag: tag.Tag, Distance: tag.Distance, Shared: tag.Shared})
	}
	return out, nil
}

func (i *Interactor) Path(ctx context.Context, input tagsin.PathInput) (dto.PathOutput, error) {
	nodes, err := i.svc.ShortestPath(ctx, input.From, input.To)
	if err != nil {
		return dto.PathOutput{}, err
	}
	return dto.PathOutput{From: input.From, To: input.To, Found: len(nodes) > 0, Nodes: mapNodes(nodes)}, nil
}

func mapNodes(nodes []domain.Node) []dto.NodeOutput {
	out := make([]dto.NodeOutput, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, dto.NodeOutput{ID: node.ID, Label: node.Label, Kind: string(node.Kind)})
	}
	return out
}
