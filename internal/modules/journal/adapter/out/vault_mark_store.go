package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"retrolog/internal/modules/journal/domain"
	journalout "retrolog/internal/modules/journal/port/out"
	"retrolog/internal/platform/markdown"
	"retrolog/internal/platform/slug"
)

type VaultMarkStore struct {
	vaultPath string
}

func NewVaultMarkStore(vaultPath string) journalout.MarkStore {
	return &VaultMarkStore{vaultPath: vaultPath}
}

// Save writes marks/<user>/YYYY-MM-DD.md; one note per user and day.
func (s *VaultMarkStore) Save(_ context.Context, mark domain.Mark) (string, error) {
	notePath := filepath.Join(s.vaultPath, "marks", slug.Key(mark.UserID), mark.Date.Format(domain.DateLayout)+".md")
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create mark directory: %w", err)
	}
	meta := map[string]any{
		"schema_version": domain.SchemaVersion,
		"user_id":        mark.UserID,
		"date":           mark.Date.Format(domain.DateLayout),
		"mark_type":      string(mark.Type),
		"note":           mark.Note,
	}
	body := mark.Note
	if body != "" {
		body += "\n"
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write mark markdown: %w", err)
	}
	return notePath, nil
}

// List returns the marks of userID, or of every user when userID is empty.
func (s *VaultMarkStore) List(_ context.Context, userID string) ([]domain.Mark, error) {
	dir := "*"
	if userID != "" {
		dir = slug.Key(userID)
	}
	matches, err := filepath.Glob(filepath.Join(s.vaultPath, "marks", dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob mark notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Mark, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, _, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		mark := domain.Mark{
			UserID:   markdown.AsString(meta["user_id"]),
			Note:     markdown.AsString(meta["note"]),
			Type:     domain.MarkType(markdown.AsString(meta["mark_type"])),
			NotePath: path,
		}
		if day := markdown.AsDatePtr(meta["date"]); day != nil {
			mark.Date = *day
		}
		if userID != "" && mark.UserID != userID {
			continue
		}
		if err := mark.Validate(); err != nil {
			return nil, fmt.Errorf("decode mark %s: %w", path, err)
		}
		out = append(out, mark)
	}
	return out, nil
}
