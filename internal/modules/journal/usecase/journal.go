package usecase

import (
	"context"
	"fmt"
	"time"

	"retrolog/internal/modules/journal/domain"
	"retrolog/internal/modules/journal/dto"
	journalin "retrolog/internal/modules/journal/port/in"
	"retrolog/internal/modules/journal/service"
	tagsin "retrolog/internal/modules/tags/port/in"
)

type Interactor struct {
	svc  *service.JournalService
	tags tagsin.Usecase
}

func NewInteractor(svc *service.JournalService, tags tagsin.Usecase) journalin.Usecase {
	return &Interactor{svc: svc, tags: tags}
}

func (i *Interactor) CreateSession(ctx context.Context, input dto.CreateSessionInput) (dto.SessionOutput, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	session, err := i.svc.CreateSession(ctx, input.UserID, input.Title, input.Description, input.Date, status, input.Tags)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) GetSession(ctx context.Context, id string) (dto.SessionOutput, error) {
	session, err := i.svc.GetSession(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) ListSessions(ctx context.Context, input dto.ListSessionsInput) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.ListSessions(ctx, input.UserID, input.From, input.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, mapSession(session))
	}
	return out, nil
}

func (i *Interactor) SetSessionStatus(ctx context.Context, input dto.SetSessionStatusInput) (dto.SessionOutput, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	session, err := i.svc.SetSessionStatus(ctx, input.SessionID, status)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) AddItem(ctx context.Context, input dto.AddItemInput) (dto.ItemOutput, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	session, item, err := i.svc.AddItem(ctx, input.SessionID, service.ItemFields{
		Category:     category,
		Content:      input.Content,
		DueDate:      input.DueDate,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		EmotionScore: input.EmotionScore,
		ImpactScore:  input.ImpactScore,
		Priority:     priority,
		Tags:         input.Tags,
		Assignee:     input.Assignee,
		Notes:        input.Notes,
	})
	if err != nil {
		return dto.ItemOutput{}, err
	}
	if i.tags != nil && len(item.Tags) > 0 {
		_ = i.tags.SyncItem(ctx, tagsin.SyncItemInput{ItemID: item.ID, ItemLabel: item.Content, Tags: item.Tags})
	}
	return mapItem(session.ID, item), nil
}

func (i *Interactor) CompleteItem(ctx context.Context, input dto.CompleteItemInput) (dto.ItemOutput, error) {
	item, err := i.svc.CompleteItem(ctx, input.SessionID, input.ItemID, input.Done)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return mapItem(input.SessionID, item), nil
}

func (i *Interactor) LinkWorkLog(ctx context.Context, input dto.LinkWorkLogInput) (dto.ItemOutput, error) {
	item, err := i.svc.LinkWorkLog(ctx, input.SessionID, input.ItemID, input.WorkLogID, input.Relevance, input.Notes)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return mapItem(input.SessionID, item), nil
}

func (i *Interactor) SetMark(ctx context.Context, input dto.SetMarkInput) (dto.MarkOutput, error) {
	markType, err := domain.ParseMarkType(input.Type)
	if err != nil {
		return dto.MarkOutput{}, err
	}
	mark, err := i.svc.SetMark(ctx, input.UserID, input.Date, input.Note, markType)
	if err != nil {
		return dto.MarkOutput{}, err
	}
	return mapMark(mark), nil
}

func (i *Interactor) ListMarks(ctx context.Context, input dto.ListMarksInput) ([]dto.MarkOutput, error) {
	marks, err := i.svc.ListMarks(ctx, input.UserID, input.From, input.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MarkOutput, 0, len(marks))
	for _, mark := range marks {
		out = append(out, mapMark(mark))
	}
	return out, nil
}

// Reindex rebuilds the journal tables and the tag index from the vault.
func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	if err := i.svc.Reindex(ctx); err != nil {
		return err
	}
	if i.tags == nil {
		return nil
	}
	if err := i.tags.Reset(ctx); err != nil {
		return fmt.Errorf("reset tag index: %w", err)
	}
	sessions, err := i.svc.ListSessions(ctx, "", time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	for _, session := range sessions {
		for _, item := range session.Items {
			if len(item.Tags) == 0 {
				continue
			}
			if err := i.tags.SyncItem(ctx, tagsin.SyncItemInput{ItemID: item.ID, ItemLabel: item.Content, Tags: item.Tags}); err != nil {
				return err
			}
		}
	}
	return nil
}

func mapSession(session domain.Session) dto.SessionOutput {
	out := dto.SessionOutput{
		ID:          session.ID,
		UserID:      session.UserID,
		Title:       session.Title,
		Description: session.Description,
		Date:        session.Date,
		Status:      string(session.Status),
		Tags:        nonNil(session.Tags),
		CompletedAt: session.CompletedAt,
		NotePath:    session.NotePath,
		Items:       make([]dto.ItemOutput, 0, len(session.Items)),
	}
	for _, item := range session.Items {
		out.Items = append(out.Items, mapItem(session.ID, item))
	}
	return out
}

func mapItem(sessionID string, item domain.Item) dto.ItemOutput {
	out := dto.ItemOutput{
		ID:           item.ID,
		SessionID:    sessionID,
		Category:     string(item.Category),
		Content:      item.Content,
		DueDate:      item.DueDate,
		StartDate:    item.StartDate,
		EndDate:      item.EndDate,
		EmotionScore: item.EmotionScore,
		ImpactScore:  item.ImpactScore,
		Priority:     string(item.Priority),
		Tags:         nonNil(item.Tags),
		Assignee:     item.Assignee,
		Notes:        item.Notes,
		CompletedAt:  item.CompletedAt,
	}
	for _, link := range item.Links {
		out.Links = append(out.Links, dto.WorkLinkOutput{WorkLogID: link.WorkLogID, Relevance: link.Relevance, Notes: link.Notes})
	}
	return out
}

func mapMark(mark domain.Mark) dto.MarkOutput {
	return dto.MarkOutput{UserID: mark.UserID, Date: mark.Date, Note: mark.Note, Type: string(mark.Type), NotePath: mark.NotePath}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
