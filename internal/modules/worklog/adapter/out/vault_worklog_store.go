package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"retrolog/internal/modules/worklog/domain"
	worklogout "retrolog/internal/modules/worklog/port/out"
	"retrolog/internal/platform/markdown"
	"retrolog/internal/platform/slug"
)

type VaultWorkLogStore struct {
	vaultPath string
}

func NewVaultWorkLogStore(vaultPath string) worklogout.WorkLogStore {
	return &VaultWorkLogStore{vaultPath: vaultPath}
}

func (s *VaultWorkLogStore) Save(_ context.Context, log domain.WorkLog) (string, error) {
	path := s.notePath(log)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create work log dir: %w", err)
	}
	rendered, err := markdown.RenderFrontmatter(workLogFrontmatter(log), renderBody(log))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write work log note: %w", err)
	}
	return path, nil
}

func (s *VaultWorkLogStore) List(_ context.Context) ([]domain.WorkLog, error) {
	glob := filepath.Join(s.vaultPath, "worklogs", "*", "*", "*", "*.md")
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob work log notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.WorkLog, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, _, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		log, convErr := workLogFromFrontmatter(meta, path)
		if convErr != nil {
			return nil, fmt.Errorf("decode work log %s: %w", path, convErr)
		}
		out = append(out, log)
	}
	return out, nil
}

func (s *VaultWorkLogStore) notePath(log domain.WorkLog) string {
	if log.NotePath != "" {
		return log.NotePath
	}
	date := log.StartedAt
	name := date.Format("150405") + "-" + slug.Make(log.Title)
	if len(log.ID) >= 8 {
		name += "-" + log.ID[:8]
	}
	return filepath.Join(s.vaultPath, "worklogs", date.Format("2006"), date.Format("01"), date.Format("02"), name+".md")
}

func renderBody(log domain.WorkLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", log.Title)
	if log.Project != "" {
		fmt.Fprintf(&b, "- Project: %s\n", log.Project)
	}
	if log.Category != "" {
		fmt.Fprintf(&b, "- Category: %s\n", log.Category)
	}
	if minutes := log.DurationMinutes(); minutes != nil {
		fmt.Fprintf(&b, "- Duration: %d minutes\n", *minutes)
	}
	if log.Description != "" {
		fmt.Fprintf(&b, "\n## Notes\n\n%s\n", log.Description)
	}
	return b.String()
}

func workLogFrontmatter(log domain.WorkLog) map[string]any {
	meta := map[string]any{
		"schema_version": domain.SchemaVersion,
		"id":             log.ID,
		"user_id":        log.UserID,
		"title":          log.Title,
		"category":       log.Category,
		"project":        log.Project,
		"start_time":     log.StartedAt.Format(time.RFC3339),
		"tags":           log.Tags,
		"billable":       log.Billable,
		"status":         string(log.Status),
	}
	if log.Description != "" {
		meta["description"] = log.Description
	}
	if log.EndedAt != nil {
		meta["end_time"] = markdown.FormatTime(log.EndedAt)
		meta["duration_minutes"] = *log.DurationMinutes()
	}
	for key, score := range map[string]*int{
		"mood_score":         log.Scores.Mood,
		"productivity_score": log.Scores.Productivity,
		"difficulty_score":   log.Scores.Difficulty,
	} {
		if score != nil {
			meta[key] = *score
		}
	}
	return meta
}

func workLogFromFrontmatter(meta map[string]any, notePath string) (domain.WorkLog, error) {
	started := markdown.AsTimePtr(meta["start_time"])
	if started == nil {
		return domain.WorkLog{}, fmt.Errorf("missing start_time")
	}
	status, err := domain.ParseStatus(markdown.AsString(meta["status"]))
	if err != nil {
		return domain.WorkLog{}, err
	}
	return domain.WorkLog{
		ID:          markdown.AsString(meta["id"]),
		UserID:      markdown.AsString(meta["user_id"]),
		Title:       markdown.AsString(meta["title"]),
		Description: markdown.AsString(meta["description"]),
		Category:    markdown.AsString(meta["category"]),
		Project:     markdown.AsString(meta["project"]),
		StartedAt:   *started,
		EndedAt:     markdown.AsTimePtr(meta["end_time"]),
		Scores: domain.Scores{
			Mood:         markdown.AsIntPtr(meta["mood_score"]),
			Productivity: markdown.AsIntPtr(meta["productivity_score"]),
			Difficulty:   markdown.AsIntPtr(meta["difficulty_score"]),
		},
		Tags:     markdown.AsStringSlice(meta["tags"]),
		Billable: markdown.AsBool(meta["billable"]),
		Status:   status,
		NotePath: notePath,
	}, nil
}
