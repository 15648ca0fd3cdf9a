package in

import (
	"context"

	"retrolog/internal/modules/tags/dto"
	tagsin "retrolog/internal/modules/tags/port/in"
)

type CLIHandler struct {
	usecase tagsin.Usecase
}

func NewCLIHandler(usecase tagsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListTags(ctx context.Context, limit int) ([]dto.TagSummaryOutput, error) {
	return h.usecase.ListTags(ctx, limit)
}

func (h CLIHandler) Related(ctx context.Context, tag string, depth int) (dto.RelatedOutput, error) {
	return h.usecase.Related(ctx, tagsin.RelatedInput{Tag: tag, Depth: depth})
}

func (h CLIHandler) Path(ctx context.Context, from, to string) (dto.PathOutput, error) {
	return h.usecase.Path(ctx, tagsin.PathInput{From: from, To: to})
}
