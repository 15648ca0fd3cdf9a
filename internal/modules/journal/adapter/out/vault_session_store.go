package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"retrolog/internal/modules/journal/domain"
	journalout "retrolog/internal/modules/journal/port/out"
	apperrors "retrolog/internal/platform/errors"
	"retrolog/internal/platform/markdown"
)

type VaultSessionStore struct {
	vaultPath string
}

func NewVaultSessionStore(vaultPath string) journalout.SessionStore {
	return &VaultSessionStore{vaultPath: vaultPath}
}

// Save writes sessions/YYYY/MM/DD/<slug>-<id>.md. Free text outside the
// managed item block survives rewrites.
func (s *VaultSessionStore) Save(_ context.Context, document domain.SessionDocument) (string, error) {
	session := document.Session
	notePath := s.notePath(session)
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create session directory: %w", err)
	}

	body := document.Body
	if existing, err := os.ReadFile(notePath); err == nil {
		_, existingBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr == nil && strings.TrimSpace(body) == "" {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "## Notes\n\n## Items\n"
	}
	body = markdown.ReplaceManagedBlock(body, domain.ManagedItemsStart, domain.ManagedItemsEnd, renderItems(session.Items))

	rendered, err := markdown.RenderFrontmatter(sessionFrontmatter(session), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session markdown: %w", err)
	}
	return notePath, nil
}

func (s *VaultSessionStore) FindByID(ctx context.Context, id string) (domain.SessionDocument, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return domain.SessionDocument{}, err
	}
	for _, doc := range docs {
		if doc.Session.ID == id {
			return doc, nil
		}
	}
	return domain.SessionDocument{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
}

func (s *VaultSessionStore) List(_ context.Context) ([]domain.SessionDocument, error) {
	glob := filepath.Join(s.vaultPath, "sessions", "*", "*", "*", "*.md")
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob session notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.SessionDocument, 0, len(matches))
	for _, path := range matches {
		doc, err := readSessionNote(path)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// Load reads one session note. A missing note is ErrNotFound.
func (s *VaultSessionStore) Load(_ context.Context, notePath string) (domain.SessionDocument, error) {
	return readSessionNote(notePath)
}

func readSessionNote(path string) (domain.SessionDocument, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.SessionDocument{}, fmt.Errorf("%w: session note %s", apperrors.ErrNotFound, path)
	}
	if err != nil {
		return domain.SessionDocument{}, fmt.Errorf("read %s: %w", path, err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(content))
	if err != nil {
		return domain.SessionDocument{}, fmt.Errorf("parse %s: %w", path, err)
	}
	session, err := sessionFromFrontmatter(meta, path)
	if err != nil {
		return domain.SessionDocument{}, fmt.Errorf("decode session %s: %w", path, err)
	}
	return domain.SessionDocument{Session: session, Body: body}, nil
}

func (s *VaultSessionStore) notePath(session domain.Session) string {
	if session.NotePath != "" {
		return session.NotePath
	}
	name := session.Slug
	if name == "" {
		name = "session"
	}
	if len(session.ID) >= 8 {
		name += "-" + session.ID[:8]
	} else if session.ID != "" {
		name += "-" + session.ID
	}
	return filepath.Join(s.vaultPath, "sessions", session.Date.Format("2006"), session.Date.Format("01"), session.Date.Format("02"), name+".md")
}

func renderItems(items []domain.Item) string {
	entries := make([]markdown.ChecklistEntry, 0, len(items))
	for _, item := range items {
		label := fmt.Sprintf("**%s** %s", strings.ToUpper(string(item.Category)), item.Content)
		for _, tag := range item.Tags {
			label += " #" + tag
		}
		entries = append(entries, markdown.ChecklistEntry{Done: item.CompletedAt != nil, Label: label})
	}
	return markdown.RenderChecklist(entries)
}

func sessionFrontmatter(session domain.Session) map[string]any {
	items := make([]map[string]any, 0, len(session.Items))
	for _, item := range session.Items {
		items = append(items, itemFrontmatter(item))
	}
	meta := map[string]any{
		"schema_version": domain.SchemaVersion,
		"id":             session.ID,
		"user_id":        session.UserID,
		"title":          session.Title,
		"description":    session.Description,
		"session_date":   session.Date.Format(domain.DateLayout),
		"status":         string(session.Status),
		"tags":           session.Tags,
		"created_at":     session.CreatedAt.Format(time.RFC3339),
		"updated_at":     session.UpdatedAt.Format(time.RFC3339),
		"items":          items,
	}
	if session.CompletedAt != nil {
		meta["completed_at"] = markdown.FormatTime(session.CompletedAt)
	}
	return meta
}

func itemFrontmatter(item domain.Item) map[string]any {
	meta := map[string]any{
		"id":       item.ID,
		"category": string(item.Category),
		"content":  item.Content,
		"tags":     item.Tags,
		"created":  item.CreatedAt.Format(time.RFC3339),
	}
	optionalDate(meta, "due_date", item.DueDate)
	optionalDate(meta, "start_date", item.StartDate)
	optionalDate(meta, "end_date", item.EndDate)
	if item.CompletedAt != nil {
		meta["completed_at"] = markdown.FormatTime(item.CompletedAt)
	}
	if item.EmotionScore != nil {
		meta["emotion_score"] = *item.EmotionScore
	}
	if item.ImpactScore != nil {
		meta["impact_score"] = *item.ImpactScore
	}
	if item.Priority != domain.PriorityNone {
		meta["priority"] = string(item.Priority)
	}
	if item.Assignee != "" {
		meta["assignee"] = item.Assignee
	}
	if item.Notes != "" {
		meta["notes"] = item.Notes
	}
	if len(item.Links) > 0 {
		links := make([]map[string]any, 0, len(item.Links))
		for _, link := range item.Links {
			entry := map[string]any{"work_log_id": link.WorkLogID, "relevance_score": link.Relevance}
			if link.Notes != "" {
				entry["notes"] = link.Notes
			}
			links = append(links, entry)
		}
		meta["work_logs"] = links
	}
	return meta
}

func optionalDate(meta map[string]any, key string, t *time.Time) {
	if t != nil {
		meta[key] = markdown.FormatDate(t)
	}
}

func sessionFromFrontmatter(meta map[string]any, notePath string) (domain.Session, error) {
	session := domain.Session{
		ID:          markdown.AsString(meta["id"]),
		UserID:      markdown.AsString(meta["user_id"]),
		Title:       markdown.AsString(meta["title"]),
		Description: markdown.AsString(meta["description"]),
		Status:      domain.SessionStatus(markdown.AsString(meta["status"])),
		Tags:        markdown.AsStringSlice(meta["tags"]),
		NotePath:    notePath,
		CompletedAt: markdown.AsTimePtr(meta["completed_at"]),
	}
	if day := markdown.AsDatePtr(meta["session_date"]); day != nil {
		session.Date = *day
	}
	session.Slug = strings.TrimSuffix(filepath.Base(notePath), filepath.Ext(notePath))
	if created := markdown.AsTimePtr(meta["created_at"]); created != nil {
		session.CreatedAt = *created
	}
	if updated := markdown.AsTimePtr(meta["updated_at"]); updated != nil {
		session.UpdatedAt = *updated
	}
	for _, raw := range markdown.AsMapSlice(meta["items"]) {
		session.Items = append(session.Items, itemFromFrontmatter(raw))
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func itemFromFrontmatter(meta map[string]any) domain.Item {
	item := domain.Item{
		ID:           markdown.AsString(meta["id"]),
		Category:     domain.Category(markdown.AsString(meta["category"])),
		Content:      markdown.AsString(meta["content"]),
		DueDate:      markdown.AsDatePtr(meta["due_date"]),
		StartDate:    markdown.AsDatePtr(meta["start_date"]),
		EndDate:      markdown.AsDatePtr(meta["end_date"]),
		EmotionScore: markdown.AsIntPtr(meta["emotion_score"]),
		ImpactScore:  markdown.AsIntPtr(meta["impact_score"]),
		Priority:     domain.Priority(markdown.AsString(meta["priority"])),
		Tags:         markdown.AsStringSlice(meta["tags"]),
		Assignee:     markdown.AsString(meta["assignee"]),
		Notes:        markdown.AsString(meta["notes"]),
		CompletedAt:  markdown.AsTimePtr(meta["completed_at"]),
	}
	if created := markdown.AsTimePtr(meta["created"]); created != nil {
		item.CreatedAt = *created
	}
	for _, link := range markdown.AsMapSlice(meta["work_logs"]) {
		item.Links = append(item.Links, domain.WorkLink{
			WorkLogID: markdown.AsString(link["work_log_id"]),
			Relevance: int(markdown.AsFloat(link["relevance_score"])),
			Notes:     markdown.AsString(link["notes"]),
		})
	}
	return item
}
