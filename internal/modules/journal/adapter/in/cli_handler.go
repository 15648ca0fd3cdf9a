package in

import (
	"context"
	"fmt"
	"strings"
	"time"

	"retrolog/internal/modules/journal/dto"
	journalin "retrolog/internal/modules/journal/port/in"
	apperrors "retrolog/internal/platform/errors"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// ItemArgs are the raw flag values of an item; empty strings mean unset.
type ItemArgs struct {
	SessionID string
	Category  string
	Content   string
	Due       string
	Start     string
	End       string
	Emotion   int
	Impact    int
	Priority  string
	Tags      []string
	Assignee  string
	Notes     string
}

func (h CLIHandler) CreateSession(ctx context.Context, userID, title, description, date, status string, tags []string) (dto.SessionOutput, error) {
	day, err := optionalDate(date)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	input := dto.CreateSessionInput{UserID: userID, Title: title, Description: description, Status: status, Tags: tags}
	if day != nil {
		input.Date = *day
	}
	return h.usecase.CreateSession(ctx, input)
}

func (h CLIHandler) GetSession(ctx context.Context, id string) (dto.SessionOutput, error) {
	return h.usecase.GetSession(ctx, id)
}

func (h CLIHandler) ListSessions(ctx context.Context, userID, from, to string) ([]dto.SessionOutput, error) {
	input := dto.ListSessionsInput{UserID: userID}
	if err := parseBounds(from, to, &input.From, &input.To); err != nil {
		return nil, err
	}
	return h.usecase.ListSessions(ctx, input)
}

func (h CLIHandler) SetSessionStatus(ctx context.Context, sessionID, status string) (dto.SessionOutput, error) {
	return h.usecase.SetSessionStatus(ctx, dto.SetSessionStatusInput{SessionID: sessionID, Status: status})
}

func (h CLIHandler) AddItem(ctx context.Context, args ItemArgs) (dto.ItemOutput, error) {
	input := dto.AddItemInput{
		SessionID:    args.SessionID,
		Category:     args.Category,
		Content:      args.Content,
		EmotionScore: optionalScore(args.Emotion),
		ImpactScore:  optionalScore(args.Impact),
		Priority:     args.Priority,
		Tags:         args.Tags,
		Assignee:     args.Assignee,
		Notes:        args.Notes,
	}
	var err error
	if input.DueDate, err = optionalDate(args.Due); err != nil {
		return dto.ItemOutput{}, err
	}
	if input.StartDate, err = optionalDate(args.Start); err != nil {
		return dto.ItemOutput{}, err
	}
	if input.EndDate, err = optionalDate(args.End); err != nil {
		return dto.ItemOutput{}, err
	}
	return h.usecase.AddItem(ctx, input)
}

func (h CLIHandler) CompleteItem(ctx context.Context, sessionID, itemID string, done bool) (dto.ItemOutput, error) {
	return h.usecase.CompleteItem(ctx, dto.CompleteItemInput{SessionID: sessionID, ItemID: itemID, Done: done})
}

func (h CLIHandler) LinkWorkLog(ctx context.Context, sessionID, itemID, workLogID string, relevance int, notes string) (dto.ItemOutput, error) {
	return h.usecase.LinkWorkLog(ctx, dto.LinkWorkLogInput{SessionID: sessionID, ItemID: itemID, WorkLogID: workLogID, Relevance: relevance, Notes: notes})
}

func (h CLIHandler) SetMark(ctx context.Context, userID, date, note, markType string) (dto.MarkOutput, error) {
	day, err := optionalDate(date)
	if err != nil {
		return dto.MarkOutput{}, err
	}
	input := dto.SetMarkInput{UserID: userID, Note: note, Type: markType}
	if day != nil {
		input.Date = *day
	}
	return h.usecase.SetMark(ctx, input)
}

func (h CLIHandler) ListMarks(ctx context.Context, userID, from, to string) ([]dto.MarkOutput, error) {
	input := dto.ListMarksInput{UserID: userID}
	if err := parseBounds(from, to, &input.From, &input.To); err != nil {
		return nil, err
	}
	return h.usecase.ListMarks(ctx, input)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}

func optionalScore(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, value)
	}
	return &day, nil
}

func parseBounds(from, to string, fromOut, toOut *time.Time) error {
	f, err := optionalDate(from)
	if err != nil {
		return err
	}
	t, err := optionalDate(to)
	if err != nil {
		return err
	}
	if f != nil {
		*fromOut = *f
	}
	if t != nil {
		*toOut = *t
	}
	return nil
}
