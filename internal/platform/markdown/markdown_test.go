package markdown_test

import (
	"strings"
	"testing"

	"retrolog/internal/platform/markdown"
)

func TestFrontmatterRoundTripKeepsBody(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{"id": "s-1", "tags": []string{"focus"}}, "# Title\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["id"] != "s-1" {
		t.Fatalf("expected id s-1, got %v", meta["id"])
	}
	if !strings.Contains(body, "# Title") {
		t.Fatalf("body lost: %q", body)
	}
}

func TestSplitFrontmatterRejectsUnclosedHeader(t *testing.T) {
	t.Parallel()
	if _, _, err := markdown.SplitFrontmatter("---\nid: x\n"); err == nil {
		t.Fatalf("expected missing separator error")
	}
}

func TestSplitFrontmatterAcceptsHandEditedNotes(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		content string
		id      any
		body    string
	}{
		"byte order mark and crlf": {content: "\ufeff---\r\nid: s-1\r\n---\r\nbody\r\n", id: "s-1", body: "body\n"},
		"closing fence at end":     {content: "---\nid: s-2\n---", id: "s-2", body: ""},
		"empty header":             {content: "---\n---\nbody\n", id: nil, body: "body\n"},
		"no header":                {content: "just text\n", id: nil, body: "just text\n"},
	}
	for name, tc := range cases {
		meta, body, err := markdown.SplitFrontmatter(tc.content)
		if err != nil {
			t.Fatalf("%s: split: %v", name, err)
		}
		if meta["id"] != tc.id || body != tc.body {
			t.Fatalf("%s: got id=%v body=%q", name, meta["id"], body)
		}
	}
}

func TestRenderFrontmatterOrdersHeaderKeys(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{
		"title":          "Week 1",
		"billable":       true,
		"schema_version": 1,
		"id":             "s-1",
		"note":           nil,
	}, "body\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "---\nschema_version: 1\nid: s-1\ntitle: Week 1\nbillable: true\nnote: null\n---\n\nbody\n"
	if rendered != want {
		t.Fatalf("expected %q, got %q", want, rendered)
	}
}

func TestReplaceManagedBlockIsIdempotent(t *testing.T) {
	t.Parallel()
	body := "## Notes\n\nfree text\n"
	once := markdown.ReplaceManagedBlock(body, "<!-- s -->", "<!-- e -->", "- a")
	twice := markdown.ReplaceManagedBlock(once, "<!-- s -->", "<!-- e -->", "- b")
	if strings.Count(twice, "<!-- s -->") != 1 {
		t.Fatalf("expected a single managed block, got %q", twice)
	}
	if !strings.Contains(twice, "- b") || strings.Contains(twice, "- a") {
		t.Fatalf("managed block not replaced: %q", twice)
	}
	if !strings.Contains(twice, "free text") {
		t.Fatalf("free text lost: %q", twice)
	}
}

func TestRenderChecklist(t *testing.T) {
	t.Parallel()
	got := markdown.RenderChecklist([]markdown.ChecklistEntry{{Done: true, Label: "ship"}, {Label: "multi\nline"}})
	want := "- [x] ship\n- [ ] multi line"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFrontmatterValueHelpers(t *testing.T) {
	t.Parallel()
	meta, _, err := markdown.SplitFrontmatter("---\nscore: \"4\"\nempty: \"\"\nday: 2025-01-02\ntags: [a, b]\nat: \"2025-01-02T10:00:00Z\"\nitems:\n  - id: x\n---\nbody")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if v := markdown.AsIntPtr(meta["score"]); v == nil || *v != 4 {
		t.Fatalf("expected score 4, got %v", v)
	}
	if markdown.AsIntPtr(meta["empty"]) != nil || markdown.AsIntPtr(meta["missing"]) != nil {
		t.Fatalf("expected nil for empty and missing scores")
	}
	if day := markdown.AsDatePtr(meta["day"]); day == nil || markdown.FormatDate(day) != "2025-01-02" {
		t.Fatalf("expected unquoted date to decode, got %v", day)
	}
	if tags := markdown.AsStringSlice(meta["tags"]); len(tags) != 2 || tags[1] != "b" {
		t.Fatalf("unexpected tags %v", tags)
	}
	if at := markdown.AsTimePtr(meta["at"]); at == nil || at.Hour() != 10 {
		t.Fatalf("unexpected timestamp %v", at)
	}
	if items := markdown.AsMapSlice(meta["items"]); len(items) != 1 || markdown.AsString(items[0]["id"]) != "x" {
		t.Fatalf("unexpected items %v", items)
	}
}
