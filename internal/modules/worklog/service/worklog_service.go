package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"retrolog/internal/modules/worklog/domain"
	worklogout "retrolog/internal/modules/worklog/port/out"
	"retrolog/internal/platform/clock"
	apperrors "retrolog/internal/platform/errors"
	"retrolog/internal/platform/id"
	"retrolog/internal/platform/slug"
	"retrolog/internal/platform/tx"
)

type WorkLogService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     worklogout.WorkLogStore
	projector worklogout.WorkLogProjector
	tx        tx.Manager
}

func NewWorkLogService(clock clock.Clock, idGen id.Generator, store worklogout.WorkLogStore, projector worklogout.WorkLogProjector, txm tx.Manager) *WorkLogService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &WorkLogService{clock: clock, idGen: idGen, store: store, projector: projector, tx: txm}
}

func (s *WorkLogService) Start(_ context.Context, userID, title, category, project string, tags []string, billable bool) (domain.ActiveWorkLog, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.ActiveWorkLog{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(title) == "" {
		return domain.ActiveWorkLog{}, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	return domain.ActiveWorkLog{
		WorkLogID: s.idGen.New(),
		UserID:    strings.TrimSpace(userID),
		Title:     strings.TrimSpace(title),
		Category:  strings.TrimSpace(category),
		Project:   strings.TrimSpace(project),
		Tags:      normalizeTags(tags),
		Billable:  billable,
		StartedAt: s.clock.Now(),
	}, nil
}

// Stop closes the running timer at the current instant.
func (s *WorkLogService) Stop(ctx context.Context, active domain.ActiveWorkLog, status domain.Status, description string, scores domain.Scores) (domain.WorkLog, error) {
	if status == domain.StatusInProgress {
		return domain.WorkLog{}, fmt.Errorf("%w: a stopped work log cannot stay in progress", apperrors.ErrInvalidInput)
	}
	endedAt := s.clock.Now()
	if endedAt.Before(active.StartedAt) {
		endedAt = active.StartedAt
	}
	log := domain.WorkLog{
		ID:          active.WorkLogID,
		UserID:      active.UserID,
		Title:       active.Title,
		Description: strings.TrimSpace(description),
		Category:    active.Category,
		Project:     active.Project,
		StartedAt:   active.StartedAt,
		EndedAt:     &endedAt,
		Scores:      scores,
		Tags:        active.Tags,
		Billable:    active.Billable,
		Status:      status,
	}
	return s.persist(ctx, log)
}

// Record stores a finished work log entered after the fact.
func (s *WorkLogService) Record(ctx context.Context, log domain.WorkLog) (domain.WorkLog, error) {
	log.ID = s.idGen.New()
	log.UserID = strings.TrimSpace(log.UserID)
	log.Title = strings.TrimSpace(log.Title)
	log.Description = strings.TrimSpace(log.Description)
	log.Tags = normalizeTags(log.Tags)
	if log.Status == "" {
		log.Status = domain.StatusCompleted
	}
	return s.persist(ctx, log)
}

// List answers from the projection: the user's logs whose start falls within
// [from, to] by calendar day. Zero bounds are open.
func (s *WorkLogService) List(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkLog, error) {
	if !from.IsZero() && !to.IsZero() && clock.Day(from).After(clock.Day(to)) {
		return nil, fmt.Errorf("%w: %s is after %s", apperrors.ErrInvalidRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	query := domain.ListQuery{UserID: userID}
	if !from.IsZero() {
		query.From = clock.Day(from)
	}
	if !to.IsZero() {
		query.To = clock.Day(to)
	}
	logs, err := s.projector.List(ctx, query)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].StartedAt.Before(logs[j].StartedAt) })
	return logs, nil
}

func (s *WorkLogService) Reindex(ctx context.Context) (int, error) {
	logs, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for _, log := range logs {
		if err := s.projector.Upsert(ctx, log); err != nil {
			return 0, err
		}
	}
	return len(logs), nil
}

func (s *WorkLogService) persist(ctx context.Context, log domain.WorkLog) (domain.WorkLog, error) {
	if err := log.Validate(); err != nil {
		return domain.WorkLog{}, err
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		path, err := s.store.Save(ctx, log)
		if err != nil {
			return err
		}
		log.NotePath = path
		return s.projector.Upsert(ctx, log)
	})
	if err != nil {
		return domain.WorkLog{}, err
	}
	return log, nil
}

func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := slug.Tag(tag)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
