package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"retrolog/internal/modules/suggest/domain"
	"retrolog/internal/modules/suggest/dto"
	suggestout "retrolog/internal/modules/suggest/port/out"
	apperrors "retrolog/internal/platform/errors"
)

type SuggestService struct {
	store suggestout.ManifestStore
	host  suggestout.Host
}

func NewSuggestService(store suggestout.ManifestStore, host suggestout.Host) *SuggestService {
	return &SuggestService{store: store, host: host}
}

func (s *SuggestService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *SuggestService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
			results = append(results, result)
			continue
		}
		result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		if !result.ChecksumValid {
			result.Error = "checksum mismatch"
			results = append(results, result)
			continue
		}
		if m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// Suggest asks one provider for improvement ideas. Suggestions without a
// title are dropped.
func (s *SuggestService) Suggest(ctx context.Context, input dto.SuggestInput) ([]dto.SuggestionOutput, error) {
	request := domain.Request{Kind: input.Kind, UserID: input.UserID, MetricsJSON: input.MetricsJSON}
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if !json.Valid([]byte(request.MetricsJSON)) {
		return nil, fmt.Errorf("%w: metrics payload must be valid JSON", apperrors.ErrInvalidInput)
	}
	manifest, err := s.runnableManifest(ctx, input.PluginName)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.host.Suggest(ctx, manifest, request)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SuggestionOutput, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if !suggestion.Valid() {
			continue
		}
		out = append(out, dto.SuggestionOutput{
			Title:       strings.TrimSpace(suggestion.Title),
			Description: strings.TrimSpace(suggestion.Description),
			Plan:        suggestion.Plan,
			Source:      manifest.Name,
		})
	}
	return out, nil
}

func (s *SuggestService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *SuggestService) runnableManifest(ctx context.Context, pluginName string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest, err := selectManifest(manifests, pluginName)
	if err != nil {
		return domain.Manifest{}, err
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, manifest.Name)
	}
	if !manifest.HasCapability(domain.CapabilitySuggest) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, domain.CapabilitySuggest)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host == nil {
		return domain.Manifest{}, domain.ErrNoProvider
	}
	if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return domain.Manifest{}, err
	}
	return manifest, nil
}

func selectManifest(manifests []domain.Manifest, name string) (domain.Manifest, error) {
	if name != "" {
		for _, m := range manifests {
			if m.Name == name {
				return m, nil
			}
		}
		return domain.Manifest{}, fmt.Errorf("%w: %q", domain.ErrPluginNotFound, name)
	}
	for _, m := range manifests {
		if m.Enabled && m.HasCapability(domain.CapabilitySuggest) {
			return m, nil
		}
	}
	return domain.Manifest{}, domain.ErrNoProvider
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
