package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tagsout "retrolog/internal/modules/tags/port/out"
	"retrolog/internal/platform/slug"
)

type VaultTagStore struct {
	vaultPath string
}

func NewVaultTagStore(vaultPath string) tagsout.TagNoteStore {
	return &VaultTagStore{vaultPath: vaultPath}
}

func (s *VaultTagStore) AppendItemLink(_ context.Context, tag, itemLabel, itemID string) error {
	path := filepath.Join(s.vaultPath, "tags", slug.Key(tag)+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create tags dir: %w", err)
	}
	marker := "(" + itemID + ")"
	line := fmt.Sprintf("- %s %s", strings.ReplaceAll(strings.TrimSpace(itemLabel), "\n", " "), marker)
	content := "# " + tag + "\n\n## Items\n"
	if b, err := os.ReadFile(path); err == nil {
		content = string(b)
	}
	if strings.Contains(content, marker) {
		return nil
	}
	if !strings.Contains(content, "## Items") {
		content += "\n## Items\n"
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += line + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write tag note: %w", err)
	}
	return nil
}
