package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"retrolog/internal/modules/journal/domain"
	journalout "retrolog/internal/modules/journal/port/out"
	"retrolog/internal/platform/clock"
	apperrors "retrolog/internal/platform/errors"
	"retrolog/internal/platform/id"
	"retrolog/internal/platform/slug"
	"retrolog/internal/platform/tx"
)

type JournalService struct {
	clock     clock.Clock
	idGen     id.Generator
	sessions  journalout.SessionStore
	marks     journalout.MarkStore
	projector journalout.IndexProjector
	tx        tx.Manager
}

func NewJournalService(clock clock.Clock, idGen id.Generator, sessions journalout.SessionStore, marks journalout.MarkStore, projector journalout.IndexProjector, txm tx.Manager) *JournalService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &JournalService{clock: clock, idGen: idGen, sessions: sessions, marks: marks, projector: projector, tx: txm}
}

type ItemFields struct {
	Category     domain.Category
	Content      string
	DueDate      *time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	EmotionScore *int
	ImpactScore  *int
	Priority     domain.Priority
	Tags         []string
	Assignee     string
	Notes        string
}

func (s *JournalService) CreateSession(ctx context.Context, userID, title, description string, date time.Time, status domain.SessionStatus, tags []string) (domain.Session, error) {
	now := s.clock.Now()
	title = strings.TrimSpace(title)
	if date.IsZero() {
		date = clock.Day(now)
	}
	session := domain.Session{
		ID:          s.idGen.New(),
		UserID:      strings.TrimSpace(userID),
		Title:       title,
		Description: strings.TrimSpace(description),
		Date:        calendarDay(date),
		Tags:        normalizeTags(tags),
		Slug:        slug.Make(title),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	session.SetStatus(status, now)
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	return s.persist(ctx, domain.SessionDocument{Session: session})
}

func (s *JournalService) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	doc, err := s.find(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	return doc.Session, nil
}

// ListSessions returns a user's sessions dated within [from, to], oldest
// first. A zero bound leaves that side open. The index selects the notes and
// only those are read from the vault.
func (s *JournalService) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]domain.Session, error) {
	query, err := rangeQuery(userID, from, to)
	if err != nil {
		return nil, err
	}
	paths, err := s.projector.SessionNotes(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(paths))
	for _, path := range paths {
		doc, err := s.sessions.Load(ctx, path)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		session := doc.Session
		if userID != "" && session.UserID != userID {
			continue
		}
		if !inRange(session.Date, from, to) {
			continue
		}
		out = append(out, session)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *JournalService) SetSessionStatus(ctx context.Context, sessionID string, status domain.SessionStatus) (domain.Session, error) {
	doc, err := s.find(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	now := s.clock.Now()
	doc.Session.SetStatus(status, now)
	doc.Session.UpdatedAt = now
	return s.persist(ctx, doc)
}

func (s *JournalService) AddItem(ctx context.Context, sessionID string, fields ItemFields) (domain.Session, domain.Item, error) {
	doc, err := s.find(ctx, sessionID)
	if err != nil {
		return domain.Session{}, domain.Item{}, err
	}
	now := s.clock.Now()
	item := domain.Item{
		ID:           s.idGen.New(),
		Category:     fields.Category,
		Content:      strings.TrimSpace(fields.Content),
		DueDate:      calendarDayPtr(fields.DueDate),
		StartDate:    calendarDayPtr(fields.StartDate),
		EndDate:      calendarDayPtr(fields.EndDate),
		EmotionScore: fields.EmotionScore,
		ImpactScore:  fields.ImpactScore,
		Priority:     fields.Priority,
		Tags:         normalizeTags(fields.Tags),
		Assignee:     strings.TrimSpace(fields.Assignee),
		Notes:        strings.TrimSpace(fields.Notes),
		CreatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return domain.Session{}, domain.Item{}, err
	}
	doc.Session.Items = append(doc.Session.Items, item)
	doc.Session.UpdatedAt = now
	session, err := s.persist(ctx, doc)
	if err != nil {
		return domain.Session{}, domain.Item{}, err
	}
	return session, item, nil
}

func (s *JournalService) CompleteItem(ctx context.Context, sessionID, itemID string, done bool) (domain.Item, error) {
	doc, err := s.find(ctx, sessionID)
	if err != nil {
		return domain.Item{}, err
	}
	item, err := doc.Session.FindItem(itemID)
	if err != nil {
		return domain.Item{}, err
	}
	now := s.clock.Now()
	switch {
	case done && item.CompletedAt == nil:
		item.CompletedAt = &now
	case !done:
		item.CompletedAt = nil
	}
	updated := *item
	doc.Session.UpdatedAt = now
	if _, err := s.persist(ctx, doc); err != nil {
		return domain.Item{}, err
	}
	return updated, nil
}

// LinkWorkLog records that a work log contributed to an item. Linking the
// same work log again replaces the earlier relevance and notes.
func (s *JournalService) LinkWorkLog(ctx context.Context, sessionID, itemID, workLogID string, relevance int, notes string) (domain.Item, error) {
	doc, err := s.find(ctx, sessionID)
	if err != nil {
		return domain.Item{}, err
	}
	item, err := doc.Session.FindItem(itemID)
	if err != nil {
		return domain.Item{}, err
	}
	link := domain.WorkLink{WorkLogID: strings.TrimSpace(workLogID), Relevance: relevance, Notes: strings.TrimSpace(notes)}
	replaced := false
	for idx := range item.Links {
		if item.Links[idx].WorkLogID == link.WorkLogID {
			item.Links[idx] = link
			replaced = true
		}
	}
	if !replaced {
		item.Links = append(item.Links, link)
	}
	if err := item.Validate(); err != nil {
		return domain.Item{}, err
	}
	updated := *item
	doc.Session.UpdatedAt = s.clock.Now()
	if _, err := s.persist(ctx, doc); err != nil {
		return domain.Item{}, err
	}
	return updated, nil
}

// SetMark stores the mark for a user and day, replacing an existing one.
func (s *JournalService) SetMark(ctx context.Context, userID string, date time.Time, note string, markType domain.MarkType) (domain.Mark, error) {
	if date.IsZero() {
		date = clock.Day(s.clock.Now())
	}
	mark := domain.Mark{UserID: strings.TrimSpace(userID), Date: calendarDay(date), Note: strings.TrimSpace(note), Type: markType}
	if err := mark.Validate(); err != nil {
		return domain.Mark{}, err
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		path, err := s.marks.Save(ctx, mark)
		if err != nil {
			return err
		}
		mark.NotePath = path
		return s.projector.UpsertMark(ctx, mark)
	})
	if err != nil {
		return domain.Mark{}, err
	}
	return mark, nil
}

// ListMarks answers from the index, which holds every mark field.
func (s *JournalService) ListMarks(ctx context.Context, userID string, from, to time.Time) ([]domain.Mark, error) {
	query, err := rangeQuery(userID, from, to)
	if err != nil {
		return nil, err
	}
	return s.projector.Marks(ctx, query)
}

func (s *JournalService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	docs, err := s.sessions.List(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.projector.UpsertSession(ctx, doc.Session); err != nil {
			return err
		}
	}
	marks, err := s.marks.List(ctx, "")
	if err != nil {
		return err
	}
	for _, mark := range marks {
		if err := s.projector.UpsertMark(ctx, mark); err != nil {
			return err
		}
	}
	return nil
}

// find resolves a session through the index and falls back to scanning the
// vault for notes written since the last reindex.
func (s *JournalService) find(ctx context.Context, sessionID string) (domain.SessionDocument, error) {
	path, ok, err := s.projector.SessionNote(ctx, sessionID)
	if err != nil {
		return domain.SessionDocument{}, err
	}
	if ok {
		doc, err := s.sessions.Load(ctx, path)
		if err == nil && doc.Session.ID == sessionID {
			return doc, nil
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return domain.SessionDocument{}, err
		}
	}
	return s.sessions.FindByID(ctx, sessionID)
}

func (s *JournalService) persist(ctx context.Context, doc domain.SessionDocument) (domain.Session, error) {
	if err := doc.Session.Validate(); err != nil {
		return domain.Session{}, err
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		path, err := s.sessions.Save(ctx, doc)
		if err != nil {
			return err
		}
		doc.Session.NotePath = path
		return s.projector.UpsertSession(ctx, doc.Session)
	})
	if err != nil {
		return domain.Session{}, err
	}
	return doc.Session, nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func calendarDayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := calendarDay(*t)
	return &day
}

func rangeQuery(userID string, from, to time.Time) (domain.RangeQuery, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return domain.RangeQuery{}, fmt.Errorf("%w: from is after to", apperrors.ErrInvalidRange)
	}
	query := domain.RangeQuery{UserID: userID}
	if !from.IsZero() {
		query.From = calendarDay(from)
	}
	if !to.IsZero() {
		query.To = calendarDay(to)
	}
	return query, nil
}

func inRange(day, from, to time.Time) bool {
	if !from.IsZero() && day.Before(calendarDay(from)) {
		return false
	}
	if !to.IsZero() && day.After(calendarDay(to)) {
		return false
	}
	return true
}

func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := slug.Tag(raw)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
