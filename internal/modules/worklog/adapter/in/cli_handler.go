package in

import (
	"context"
	"fmt"
	"strings"
	"time"

	"retrolog/internal/modules/worklog/dto"
	worklogin "retrolog/internal/modules/worklog/port/in"
	apperrors "retrolog/internal/platform/errors"
)

type CLIHandler struct {
	usecase worklogin.Usecase
}

func NewCLIHandler(usecase worklogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// ScoreArgs holds 1..5 flag values; zero means unset.
type ScoreArgs struct {
	Mood         int
	Productivity int
	Difficulty   int
}

func (h CLIHandler) Start(ctx context.Context, userID, title, category, project string, tags []string, billable bool) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{UserID: userID, Title: title, Category: category, Project: project, Tags: tags, Billable: billable})
}

func (h CLIHandler) Stop(ctx context.Context, workLogID, status, description string, scores ScoreArgs) (dto.WorkLogOutput, error) {
	return h.usecase.Stop(ctx, dto.StopInput{
		WorkLogID:    workLogID,
		Status:       status,
		Description:  description,
		Mood:         score(scores.Mood),
		Productivity: score(scores.Productivity),
		Difficulty:   score(scores.Difficulty),
	})
}

// Log records a finished entry. start and end are RFC3339 timestamps.
func (h CLIHandler) Log(ctx context.Context, userID, title, category, project, start, end, description string, tags []string, billable bool, scores ScoreArgs) (dto.WorkLogOutput, error) {
	startedAt, err := parseTimestamp("start", start)
	if err != nil {
		return dto.WorkLogOutput{}, err
	}
	endedAt, err := parseTimestamp("end", end)
	if err != nil {
		return dto.WorkLogOutput{}, err
	}
	return h.usecase.Log(ctx, dto.LogInput{
		UserID:       userID,
		Title:        title,
		Description:  description,
		Category:     category,
		Project:      project,
		StartedAt:    startedAt,
		EndedAt:      endedAt,
		Mood:         score(scores.Mood),
		Productivity: score(scores.Productivity),
		Difficulty:   score(scores.Difficulty),
		Tags:         tags,
		Billable:     billable,
	})
}

func (h CLIHandler) GetActive(ctx context.Context) (dto.ActiveOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) List(ctx context.Context, userID, from, to string) ([]dto.WorkLogOutput, error) {
	input := dto.ListInput{UserID: userID}
	var err error
	if input.From, err = optionalDate(from); err != nil {
		return nil, err
	}
	if input.To, err = optionalDate(to); err != nil {
		return nil, err
	}
	return h.usecase.List(ctx, input)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}

func score(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func parseTimestamp(name, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q must be RFC3339", apperrors.ErrInvalidInput, name, value)
	}
	return t, nil
}

func optionalDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, value)
	}
	return day, nil
}
