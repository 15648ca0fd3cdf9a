package out

import (
	"context"

	"retrolog/internal/modules/analytics/domain"
	analyticsout "retrolog/internal/modules/analytics/port/out"
	worklogdto "retrolog/internal/modules/worklog/dto"
	worklogin "retrolog/internal/modules/worklog/port/in"
)

type WorkLogAdapter struct {
	worklogs worklogin.Usecase
}

func NewWorkLogAdapter(worklogs worklogin.Usecase) analyticsout.WorkLogReader {
	return &WorkLogAdapter{worklogs: worklogs}
}

// WorkLogs pads the range by a day on each side; the worklog module filters by
// the start timestamp's own zone and the engine re-filters by local day.
func (a *WorkLogAdapter) WorkLogs(ctx context.Context, userID string, r domain.DateRange) ([]domain.WorkLog, error) {
	input := worklogdto.ListInput{UserID: userID}
	if !r.Start.IsZero() {
		input.From = r.Start.AddDate(0, 0, -1)
	}
	if !r.End.IsZero() {
		input.To = r.End.AddDate(0, 0, 1)
	}
	logs, err := a.worklogs.List(ctx, input)
	if err != nil {
		return nil, err
	}
	out := make([]domain.WorkLog, 0, len(logs))
	for _, log := range logs {
		out = append(out, domain.WorkLog{
			ID:           log.ID,
			UserID:       log.UserID,
			Title:        log.Title,
			Category:     log.Category,
			Project:      log.Project,
			StartedAt:    log.StartedAt,
			EndedAt:      log.EndedAt,
			Mood:         log.Mood,
			Productivity: log.Productivity,
			Difficulty:   log.Difficulty,
			Tags:         log.Tags,
			Billable:     log.Billable,
			Status:       domain.WorkStatus(log.Status),
		})
	}
	return out, nil
}
