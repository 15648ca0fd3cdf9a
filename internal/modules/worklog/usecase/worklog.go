package usecase

import (
	"context"
	"errors"
	"fmt"

	"retrolog/internal/modules/worklog/domain"
	"retrolog/internal/modules/worklog/dto"
	worklogin "retrolog/internal/modules/worklog/port/in"
	worklogout "retrolog/internal/modules/worklog/port/out"
	"retrolog/internal/modules/worklog/service"
	apperrors "retrolog/internal/platform/errors"
)

type Interactor struct {
	svc    *service.WorkLogService
	active worklogout.ActiveWorkLogStore
}

func NewInteractor(svc *service.WorkLogService, active worklogout.ActiveWorkLogStore) worklogin.Usecase {
	return &Interactor{svc: svc, active: active}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	if _, err := i.active.LoadActive(ctx); err == nil {
		return dto.StartOutput{}, apperrors.ErrActiveWorkLogExists
	} else if !errors.Is(err, apperrors.ErrNoActiveWorkLog) {
		return dto.StartOutput{}, err
	}

	active, err := i.svc.Start(ctx, input.UserID, input.Title, input.Category, input.Project, input.Tags, input.Billable)
	if err != nil {
		return dto.StartOutput{}, err
	}
	if err := i.active.SaveActive(ctx, active); err != nil {
		return dto.StartOutput{}, err
	}
	return dto.StartOutput{WorkLogID: active.WorkLogID, Title: active.Title, StartedAt: active.StartedAt}, nil
}

func (i *Interactor) Stop(ctx context.Context, input dto.StopInput) (dto.WorkLogOutput, error) {
	active, err := i.active.LoadActive(ctx)
	if err != nil {
		return dto.WorkLogOutput{}, err
	}
	if input.WorkLogID != "" && input.WorkLogID != active.WorkLogID {
		return dto.WorkLogOutput{}, fmt.Errorf("%w: work log %s is not running", apperrors.ErrNotFound, input.WorkLogID)
	}
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return dto.WorkLogOutput{}, err
	}
	log, err := i.svc.Stop(ctx, active, status, input.Description, domain.Scores{
		Mood:         input.Mood,
		Productivity: input.Productivity,
		Difficulty:   input.Difficulty,
	})
	if err != nil {
		return dto.WorkLogOutput{}, err
	}
	if err := i.active.ClearActive(ctx); err != nil {
		return dto.WorkLogOutput{}, err
	}
	return mapWorkLog(log), nil
}

func (i *Interactor) Log(ctx context.Context, input dto.LogInput) (dto.WorkLogOutput, error) {
	end := input.EndedAt
	log, err := i.svc.Record(ctx, domain.WorkLog{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Project:     input.Project,
		StartedAt:   input.StartedAt,
		EndedAt:     &end,
		Scores: domain.Scores{
			Mood:         input.Mood,
			Productivity: input.Productivity,
			Difficulty:   input.Difficulty,
		},
		Tags:     input.Tags,
		Billable: input.Billable,
		Status:   domain.StatusCompleted,
	})
	if err != nil {
		return dto.WorkLogOutput{}, err
	}
	return mapWorkLog(log), nil
}

func (i *Interactor) GetActive(ctx context.Context) (dto.ActiveOutput, error) {
	active, err := i.active.LoadActive(ctx)
	if err != nil {
		return dto.ActiveOutput{}, err
	}
	return dto.ActiveOutput{
		WorkLogID: active.WorkLogID,
		Title:     active.Title,
		Category:  active.Category,
		Project:   active.Project,
		StartedAt: active.StartedAt,
	}, nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.WorkLogOutput, error) {
	logs, err := i.svc.List(ctx, input.UserID, input.From, input.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkLogOutput, 0, len(logs))
	for _, log := range logs {
		out = append(out, mapWorkLog(log))
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	_, err := i.svc.Reindex(ctx)
	return err
}

func mapWorkLog(log domain.WorkLog) dto.WorkLogOutput {
	tags := log.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.WorkLogOutput{
		ID:              log.ID,
		UserID:          log.UserID,
		Title:           log.Title,
		Description:     log.Description,
		Category:        log.Category,
		Project:         log.Project,
		StartedAt:       log.StartedAt,
		EndedAt:         log.EndedAt,
		DurationMinutes: log.DurationMinutes(),
		Mood:            log.Scores.Mood,
		Productivity:    log.Scores.Productivity,
		Difficulty:      log.Scores.Difficulty,
		Tags:            tags,
		Billable:        log.Billable,
		Status:          string(log.Status),
		NotePath:        log.NotePath,
	}
}
