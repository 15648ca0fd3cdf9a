package domain_test

import (
	"testing"

	"retrolog/internal/modules/suggest/domain"
)

const checksum = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	suggest := []domain.Capability{domain.CapabilitySuggest}
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: checksum, Enabled: true, Capabilities: suggest}},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/p", SHA256: checksum, Capabilities: suggest}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "p", Binary: "/tmp/p", SHA256: checksum, Capabilities: suggest}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "p", Version: "1", SHA256: checksum, Capabilities: suggest}, shouldErr: true},
		{name: "bad sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: "ABC", Capabilities: suggest}, shouldErr: true},
		{name: "no capabilities", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: checksum}, shouldErr: true},
		{name: "unknown capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: checksum, Capabilities: []domain.Capability{"tty"}}, shouldErr: true},
		{name: "duplicate capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: checksum, Capabilities: []domain.Capability{"suggest", "suggest"}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestRequestAndSuggestionChecks(t *testing.T) {
	t.Parallel()
	if err := (domain.Request{Kind: "comprehensive", MetricsJSON: "{}"}).Validate(); err != nil {
		t.Fatalf("validate request: %v", err)
	}
	if err := (domain.Request{MetricsJSON: "{}"}).Validate(); err == nil {
		t.Fatalf("expected missing kind error")
	}
	if (domain.Suggestion{Title: "  "}).Valid() {
		t.Fatalf("blank title must be invalid")
	}
}
