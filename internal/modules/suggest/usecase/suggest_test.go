package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"retrolog/internal/modules/suggest/domain"
	"retrolog/internal/modules/suggest/dto"
	"retrolog/internal/modules/suggest/service"
	"retrolog/internal/modules/suggest/usecase"
	apperrors "retrolog/internal/platform/errors"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	lifecycleErr error
	requests     []domain.Request
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return h.lifecycleErr }
func (h *fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "p1", Version: "1"}, nil
}
func (h *fakeHost) Suggest(_ context.Context, _ domain.Manifest, request domain.Request) ([]domain.Suggestion, error) {
	h.requests = append(h.requests, request)
	return []domain.Suggestion{
		{Title: "Plan the week", Description: "Block focus time", Plan: []string{"pick two goals"}},
		{Title: " ", Description: "dropped"},
	}, nil
}

func TestUsecaseListDoctorAndSuggest(t *testing.T) {
	t.Parallel()
	host := &fakeHost{}
	uc := usecase.NewInteractor(service.NewSuggestService(fakeManifestStore{manifests: []domain.Manifest{manifestWithBinary(t, "p1", true)}}, host))
	ctx := context.Background()

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "p1" || list[0].Capabilities[0] != "suggest" {
		t.Fatalf("unexpected list: %+v", list)
	}

	docs, err := uc.Doctor(ctx)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(docs) != 1 || !docs[0].LifecycleOK || !docs[0].ChecksumValid {
		t.Fatalf("unexpected doctor result: %+v", docs)
	}

	out, err := uc.Suggest(ctx, dto.SuggestInput{Kind: "comprehensive", UserID: "me", MetricsJSON: `{"summary":{}}`})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(out) != 1 || out[0].Title != "Plan the week" || out[0].Source != "p1" {
		t.Fatalf("unexpected suggestions: %+v", out)
	}
	if len(host.requests) != 1 || host.requests[0].UserID != "me" {
		t.Fatalf("unexpected host requests: %+v", host.requests)
	}
}

func TestSuggestRejectsBadInputAndUnavailableProviders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	empty := usecase.NewInteractor(service.NewSuggestService(fakeManifestStore{}, &fakeHost{}))
	if _, err := empty.Suggest(ctx, dto.SuggestInput{Kind: "comprehensive", MetricsJSON: "{}"}); !errors.Is(err, domain.ErrNoProvider) {
		t.Fatalf("expected no provider, got %v", err)
	}
	if _, err := empty.Suggest(ctx, dto.SuggestInput{Kind: "comprehensive", MetricsJSON: "{not json"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	disabled := usecase.NewInteractor(service.NewSuggestService(fakeManifestStore{manifests: []domain.Manifest{manifestWithBinary(t, "off", false)}}, &fakeHost{}))
	if _, err := disabled.Suggest(ctx, dto.SuggestInput{PluginName: "off", Kind: "comprehensive", MetricsJSON: "{}"}); !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
	if _, err := disabled.Suggest(ctx, dto.SuggestInput{PluginName: "missing", Kind: "comprehensive", MetricsJSON: "{}"}); !errors.Is(err, domain.ErrPluginNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}

	timeout := usecase.NewInteractor(service.NewSuggestService(fakeManifestStore{manifests: []domain.Manifest{manifestWithBinary(t, "slow", true)}}, &fakeHost{lifecycleErr: context.DeadlineExceeded}))
	if _, err := timeout.Suggest(ctx, dto.SuggestInput{Kind: "comprehensive", MetricsJSON: "{}"}); !errors.Is(err, domain.ErrPluginTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestDoctorReportsChecksumMismatch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, "p1", true)
	manifest.SHA256 = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	uc := usecase.NewInteractor(service.NewSuggestService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, &fakeHost{}))
	docs, err := uc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if docs[0].ChecksumValid || docs[0].Error != "checksum mismatch" {
		t.Fatalf("expected checksum mismatch, got %+v", docs[0])
	}
}

func manifestWithBinary(t *testing.T, name string, enabled bool) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), name+"-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         name,
		Version:      "1",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      enabled,
		Capabilities: []domain.Capability{domain.CapabilitySuggest},
	}
}
