package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"retrolog/internal/modules/worklog/domain"
	worklogout "retrolog/internal/modules/worklog/port/out"
	apperrors "retrolog/internal/platform/errors"
)

type FileActiveWorkLogStore struct {
	path string
}

func NewFileActiveWorkLogStore(vaultPath string) worklogout.ActiveWorkLogStore {
	return &FileActiveWorkLogStore{path: filepath.Join(vaultPath, ".retrolog", "active-worklog.json")}
}

func (s *FileActiveWorkLogStore) SaveActive(_ context.Context, active domain.ActiveWorkLog) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create active work log dir: %w", err)
	}
	payload, err := json.MarshalIndent(active, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active work log: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write active work log: %w", err)
	}
	return nil
}

func (s *FileActiveWorkLogStore) LoadActive(_ context.Context) (domain.ActiveWorkLog, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveWorkLog{}, apperrors.ErrNoActiveWorkLog
		}
		return domain.ActiveWorkLog{}, fmt.Errorf("read active work log: %w", err)
	}
	active := domain.ActiveWorkLog{}
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveWorkLog{}, fmt.Errorf("decode active work log: %w", err)
	}
	if active.WorkLogID == "" {
		return domain.ActiveWorkLog{}, apperrors.ErrNoActiveWorkLog
	}
	return active, nil
}

func (s *FileActiveWorkLogStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active work log: %w", err)
	}
	return nil
}
