package out

import (
	"context"

	"retrolog/internal/modules/analytics/domain"
	analyticsout "retrolog/internal/modules/analytics/port/out"
	journaldto "retrolog/internal/modules/journal/dto"
	journalin "retrolog/internal/modules/journal/port/in"
)

// JournalAdapter reads sessions and marks through the journal module.
type JournalAdapter struct {
	journal journalin.Usecase
}

func NewJournalAdapter(journal journalin.Usecase) analyticsout.JournalReader {
	return &JournalAdapter{journal: journal}
}

func (a *JournalAdapter) Sessions(ctx context.Context, userID string, r domain.DateRange) ([]domain.Session, error) {
	sessions, err := a.journal.ListSessions(ctx, journaldto.ListSessionsInput{UserID: userID, From: r.Start, To: r.End})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, mapSession(s))
	}
	return out, nil
}

func (a *JournalAdapter) Marks(ctx context.Context, userID string, r domain.DateRange) ([]domain.Mark, error) {
	marks, err := a.journal.ListMarks(ctx, journaldto.ListMarksInput{UserID: userID, From: r.Start, To: r.End})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Mark, 0, len(marks))
	for _, m := range marks {
		out = append(out, domain.Mark{
			UserID: m.UserID,
			Date:   domain.CivilDay(m.Date, nil),
			Note:   m.Note,
			Type:   domain.MarkType(m.Type),
		})
	}
	return out, nil
}

func mapSession(s journaldto.SessionOutput) domain.Session {
	day := domain.CivilDay(s.Date, nil)
	session := domain.Session{
		ID:          s.ID,
		UserID:      s.UserID,
		Title:       s.Title,
		Description: s.Description,
		Date:        day,
		Status:      domain.SessionStatus(s.Status),
		Tags:        s.Tags,
		CompletedAt: s.CompletedAt,
		Items:       make([]domain.Item, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		links := make([]domain.WorkLink, 0, len(item.Links))
		for _, link := range item.Links {
			links = append(links, domain.WorkLink{WorkLogID: link.WorkLogID, Relevance: link.Relevance, Notes: link.Notes})
		}
		session.Items = append(session.Items, domain.Item{
			ID:           item.ID,
			SessionID:    s.ID,
			SessionDate:  day,
			Category:     domain.Category(item.Category),
			Content:      item.Content,
			DueDate:      item.DueDate,
			StartDate:    item.StartDate,
			EndDate:      item.EndDate,
			EmotionScore: item.EmotionScore,
			ImpactScore:  item.ImpactScore,
			Priority:     domain.Priority(item.Priority),
			Tags:         item.Tags,
			Assignee:     item.Assignee,
			Notes:        item.Notes,
			CompletedAt:  item.CompletedAt,
			Links:        links,
		})
	}
	return session
}
