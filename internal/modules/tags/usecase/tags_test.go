package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tagsadapter "retrolog/internal/modules/tags/adapter/out"
	tagsin "retrolog/internal/modules/tags/port/in"
	"retrolog/internal/modules/tags/service"
	"retrolog/internal/modules/tags/usecase"
	"retrolog/internal/platform/slug"
)

type fakeNotes struct{ called int }

func (f *fakeNotes) AppendItemLink(context.Context, string, string, string) error {
	f.called++
	return nil
}

func newInteractor(t *testing.T) (tagsin.Usecase, string) {
	t.Helper()
	vault := t.TempDir()
	index, err := tagsadapter.NewSQLiteTagIndex(filepath.Join(vault, ".retrolog", "retrolog.db"))
	if err != nil {
		t.Fatalf("new tag index: %v", err)
	}
	return usecase.NewInteractor(service.NewTagService(tagsadapter.NewVaultTagStore(vault), index)), vault
}

func TestSyncItemNormalizesAndWritesNotes(t *testing.T) {
	t.Parallel()
	notes := &fakeNotes{}
	index, err := tagsadapter.NewSQLiteTagIndex(filepath.Join(t.TempDir(), "idx.db"))
	if err != nil {
		t.Fatalf("new tag index: %v", err)
	}
	uc := usecase.NewInteractor(service.NewTagService(notes, index))
	if err := uc.SyncItem(context.Background(), tagsin.SyncItemInput{ItemID: "i1", ItemLabel: "Ship it", Tags: []string{"Deploy", " deploy", "", "ci"}}); err != nil {
		t.Fatalf("sync item: %v", err)
	}
	if notes.called != 2 {
		t.Fatalf("expected two tag notes, got %d", notes.called)
	}
	tags, err := uc.ListTags(context.Background(), 10)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(tags) != 2 || tags[0].Tag != "ci" || tags[1].Tag != "deploy" {
		t.Fatalf("unexpected tags %+v", tags)
	}
}

func TestRelatedAndPathThroughSharedItems(t *testing.T) {
	t.Parallel()
	uc, vault := newInteractor(t)
	ctx := context.Background()
	items := []tagsin.SyncItemInput{
		{ItemID: "i1", ItemLabel: "flaky tests", Tags: []string{"ci", "testing"}},
		{ItemID: "i2", ItemLabel: "slow pipeline", Tags: []string{"ci", "infra"}},
		{ItemID: "i3", ItemLabel: "retry policy", Tags: []string{"ci", "testing"}},
		{ItemID: "i4", ItemLabel: "new cluster", Tags: []string{"infra", "k8s"}},
	}
	for _, item := range items {
		if err := uc.SyncItem(ctx, item); err != nil {
			t.Fatalf("sync %s: %v", item.ItemID, err)
		}
	}

	related, err := uc.Related(ctx, tagsin.RelatedInput{Tag: "CI", Depth: 1})
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(related.Related) != 2 || related.Related[0].Tag != "testing" || related.Related[0].Shared != 2 || related.Related[1].Tag != "infra" {
		t.Fatalf("unexpected related tags %+v", related.Related)
	}

	deeper, err := uc.Related(ctx, tagsin.RelatedInput{Tag: "ci", Depth: 2})
	if err != nil {
		t.Fatalf("related depth 2: %v", err)
	}
	last := deeper.Related[len(deeper.Related)-1]
	if last.Tag != "k8s" || last.Distance != 2 || last.Shared != 0 {
		t.Fatalf("expected k8s at distance 2, got %+v", last)
	}

	path, err := uc.Path(ctx, tagsin.PathInput{From: "testing", To: "k8s"})
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if !path.Found || len(path.Nodes) != 7 || path.Nodes[0].ID != "testing" || path.Nodes[6].ID != "k8s" {
		t.Fatalf("unexpected path %+v", path)
	}

	note, err := os.ReadFile(filepath.Join(vault, "tags", slug.Key("ci")+".md"))
	if err != nil {
		t.Fatalf("read tag note: %v", err)
	}
	if strings.Count(string(note), "(i") != 3 {
		t.Fatalf("expected three item links in tag note: %s", note)
	}

	if err := uc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	tags, err := uc.ListTags(ctx, 0)
	if err != nil || len(tags) != 0 {
		t.Fatalf("expected empty index after reset, got %+v %v", tags, err)
	}
}
