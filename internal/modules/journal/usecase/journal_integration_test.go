package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	journalout "retrolog/internal/modules/journal/adapter/out"
	"retrolog/internal/modules/journal/dto"
	journalin "retrolog/internal/modules/journal/port/in"
	"retrolog/internal/modules/journal/service"
	"retrolog/internal/modules/journal/usecase"
	tagsdto "retrolog/internal/modules/tags/dto"
	tagsin "retrolog/internal/modules/tags/port/in"
	"retrolog/internal/platform/clock"
	apperrors "retrolog/internal/platform/errors"
	"retrolog/internal/platform/id"
	"retrolog/internal/platform/slug"
	"retrolog/internal/platform/tx"

	_ "modernc.org/sqlite"
)

type fakeTags struct {
	synced []tagsin.SyncItemInput
	resets int
}

func (f *fakeTags) SyncItem(_ context.Context, input tagsin.SyncItemInput) error {
	f.synced = append(f.synced, input)
	return nil
}

func (f *fakeTags) Reset(context.Context) error {
	f.resets++
	return nil
}

func (f *fakeTags) ListTags(context.Context, int) ([]tagsdto.TagSummaryOutput, error) {
	return nil, nil
}

func (f *fakeTags) Related(context.Context, tagsin.RelatedInput) (tagsdto.RelatedOutput, error) {
	return tagsdto.RelatedOutput{}, nil
}

func (f *fakeTags) Path(context.Context, tagsin.PathInput) (tagsdto.PathOutput, error) {
	return tagsdto.PathOutput{}, nil
}

func newJournal(t *testing.T, tags tagsin.Usecase) (journalin.Usecase, string, string) {
	t.Helper()
	vault := t.TempDir()
	dbPath := filepath.Join(vault, ".retrolog", "retrolog.db")
	projector, err := journalout.NewSQLiteProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	clk := clock.Fixed{At: time.Date(2025, 1, 3, 18, 0, 0, 0, time.UTC)}
	svc := service.NewJournalService(clk, id.UUID{}, journalout.NewVaultSessionStore(vault), journalout.NewVaultMarkStore(vault), projector, tx.NoopManager{})
	return usecase.NewInteractor(svc, tags), vault, dbPath
}

func TestSessionLifecycleWritesVaultAndIndex(t *testing.T) {
	t.Parallel()
	tags := &fakeTags{}
	uc, _, dbPath := newJournal(t, tags)
	ctx := context.Background()

	session, err := uc.CreateSession(ctx, dto.CreateSessionInput{UserID: "me", Title: "Week 1 retro", Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.Status != "not_started" || !strings.Contains(session.NotePath, filepath.Join("sessions", "2025", "01", "03")) {
		t.Fatalf("unexpected session %+v", session)
	}

	impact := 4
	item, err := uc.AddItem(ctx, dto.AddItemInput{SessionID: session.ID, Category: "Try", Content: "Pair on reviews", ImpactScore: &impact, Tags: []string{"Reviews", "reviews", "team"}})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.Category != "try" || len(item.Tags) != 2 {
		t.Fatalf("unexpected item %+v", item)
	}
	if len(tags.synced) != 1 || tags.synced[0].ItemID != item.ID {
		t.Fatalf("expected tag sync for item, got %+v", tags.synced)
	}

	done, err := uc.CompleteItem(ctx, dto.CompleteItemInput{SessionID: session.ID, ItemID: item.ID, Done: true})
	if err != nil || done.CompletedAt == nil {
		t.Fatalf("complete item: %+v %v", done, err)
	}
	linked, err := uc.LinkWorkLog(ctx, dto.LinkWorkLogInput{SessionID: session.ID, ItemID: item.ID, WorkLogID: "w1", Relevance: 5})
	if err != nil || len(linked.Links) != 1 {
		t.Fatalf("link work log: %+v %v", linked, err)
	}
	if _, err := uc.LinkWorkLog(ctx, dto.LinkWorkLogInput{SessionID: session.ID, ItemID: item.ID, WorkLogID: "w1", Relevance: 9}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid relevance, got %v", err)
	}

	completed, err := uc.SetSessionStatus(ctx, dto.SetSessionStatusInput{SessionID: session.ID, Status: "completed"})
	if err != nil || completed.CompletedAt == nil {
		t.Fatalf("complete session: %+v %v", completed, err)
	}

	got, err := uc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].CompletedAt == nil || *got.Items[0].ImpactScore != 4 || got.Items[0].Links[0].Relevance != 5 {
		t.Fatalf("session did not round trip through the vault: %+v", got)
	}
	note, err := os.ReadFile(got.NotePath)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if !strings.Contains(string(note), "- [x] **TRY** Pair on reviews #reviews #team") {
		t.Fatalf("managed item block missing: %s", note)
	}

	if err := uc.Reindex(ctx, dto.ReindexInput{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if tags.resets != 1 || len(tags.synced) != 2 {
		t.Fatalf("expected tag index rebuild, got resets=%d synced=%d", tags.resets, len(tags.synced))
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	var sessions, items, links int
	if err := db.QueryRow(`SELECT (SELECT COUNT(*) FROM sessions), (SELECT COUNT(*) FROM items), (SELECT COUNT(*) FROM item_work_logs)`).Scan(&sessions, &items, &links); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if sessions != 1 || items != 1 || links != 1 {
		t.Fatalf("unexpected projection counts %d/%d/%d", sessions, items, links)
	}
}

func TestListSessionsFiltersByUserAndRange(t *testing.T) {
	t.Parallel()
	uc, _, _ := newJournal(t, nil)
	ctx := context.Background()
	for _, in := range []dto.CreateSessionInput{
		{UserID: "me", Title: "a", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: "me", Title: "b", Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{UserID: "me", Title: "c", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: "other", Title: "d", Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	} {
		if _, err := uc.CreateSession(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Title, err)
		}
	}
	list, err := uc.ListSessions(ctx, dto.ListSessionsInput{UserID: "me", From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Title != "a" || list[1].Title != "b" {
		t.Fatalf("unexpected sessions %+v", list)
	}
	if _, err := uc.ListSessions(ctx, dto.ListSessionsInput{From: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
}

func TestSetMarkIsUniquePerDay(t *testing.T) {
	t.Parallel()
	uc, vault, _ := newJournal(t, nil)
	ctx := context.Background()
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if _, err := uc.SetMark(ctx, dto.SetMarkInput{UserID: "me", Date: day, Note: "first"}); err != nil {
		t.Fatalf("set mark: %v", err)
	}
	if _, err := uc.SetMark(ctx, dto.SetMarkInput{UserID: "me", Date: day, Note: "shipped v1", Type: "milestone"}); err != nil {
		t.Fatalf("replace mark: %v", err)
	}
	marks, err := uc.ListMarks(ctx, dto.ListMarksInput{UserID: "me"})
	if err != nil {
		t.Fatalf("list marks: %v", err)
	}
	if len(marks) != 1 || marks[0].Type != "milestone" || marks[0].Note != "shipped v1" {
		t.Fatalf("unexpected marks %+v", marks)
	}
	if _, err := os.Stat(filepath.Join(vault, "marks", slug.Key("me"), "2025-01-02.md")); err != nil {
		t.Fatalf("expected mark note: %v", err)
	}
	if _, err := uc.SetMark(ctx, dto.SetMarkInput{UserID: "me", Date: day, Type: "holiday"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid mark type, got %v", err)
	}
}

func TestMarksOfUsersWithTheSameSlugStaySeparate(t *testing.T) {
	t.Parallel()
	uc, vault, _ := newJournal(t, nil)
	ctx := context.Background()
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, in := range []dto.SetMarkInput{
		{UserID: "Alice.B", Date: day, Note: "from alice"},
		{UserID: "alice-b", Date: day, Note: "from the other alice"},
	} {
		if _, err := uc.SetMark(ctx, in); err != nil {
			t.Fatalf("set mark for %s: %v", in.UserID, err)
		}
	}
	notes, err := filepath.Glob(filepath.Join(vault, "marks", "*", "2025-01-02.md"))
	if err != nil || len(notes) != 2 {
		t.Fatalf("expected one note per user, got %v (%v)", notes, err)
	}

	check := func(stage string) {
		t.Helper()
		for user, want := range map[string]string{"Alice.B": "from alice", "alice-b": "from the other alice"} {
			marks, err := uc.ListMarks(ctx, dto.ListMarksInput{UserID: user})
			if err != nil {
				t.Fatalf("%s: list marks for %s: %v", stage, user, err)
			}
			if len(marks) != 1 || marks[0].Note != want {
				t.Fatalf("%s: unexpected marks for %s: %+v", stage, user, marks)
			}
		}
	}
	check("after write")
	if err := uc.Reindex(ctx, dto.ReindexInput{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	check("after reindex")
}

func TestListSessionsAnswersFromIndex(t *testing.T) {
	t.Parallel()
	uc, _, dbPath := newJournal(t, nil)
	ctx := context.Background()
	kept, err := uc.CreateSession(ctx, dto.CreateSessionInput{UserID: "me", Title: "kept", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gone, err := uc.CreateSession(ctx, dto.CreateSessionInput{UserID: "me", Title: "gone", Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := os.Remove(gone.NotePath); err != nil {
		t.Fatalf("remove note: %v", err)
	}
	list, err := uc.ListSessions(ctx, dto.ListSessionsInput{UserID: "me"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != kept.ID {
		t.Fatalf("expected the deleted note to be skipped, got %+v", list)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Exec(`DELETE FROM sessions`); err != nil {
		t.Fatalf("clear index: %v", err)
	}
	if list, err := uc.ListSessions(ctx, dto.ListSessionsInput{UserID: "me"}); err != nil || len(list) != 0 {
		t.Fatalf("expected an empty index to list nothing, got %+v (%v)", list, err)
	}
	if got, err := uc.GetSession(ctx, kept.ID); err != nil || got.ID != kept.ID {
		t.Fatalf("expected lookup to fall back to the vault, got %+v (%v)", got, err)
	}

	if err := uc.Reindex(ctx, dto.ReindexInput{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	list, err = uc.ListSessions(ctx, dto.ListSessionsInput{UserID: "me"})
	if err != nil || len(list) != 1 || list[0].Title != "kept" {
		t.Fatalf("expected reindex to restore the session, got %+v (%v)", list, err)
	}
}
