package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"retrolog/internal/modules/journal/domain"
	journalout "retrolog/internal/modules/journal/port/out"
	"retrolog/internal/platform/markdown"

	_ "modernc.org/sqlite"
)

// SQLiteProjector mirrors the vault notes into queryable tables. The vault
// stays authoritative; Reset plus a full replay rebuilds the index.
type SQLiteProjector struct {
	db *sql.DB
}

func NewSQLiteProjector(dbPath string) (journalout.IndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  session_date TEXT NOT NULL,
  status TEXT NOT NULL,
  tags TEXT NOT NULL,
  completed_at TEXT,
  note_path TEXT,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_date ON sessions(user_id, session_date);
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  category TEXT NOT NULL,
  content TEXT NOT NULL,
  due_date TEXT,
  emotion_score INTEGER,
  impact_score INTEGER,
  priority TEXT,
  tags TEXT NOT NULL,
  completed_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_session ON items(session_id);
CREATE TABLE IF NOT EXISTS item_work_logs (
  item_id TEXT NOT NULL,
  work_log_id TEXT NOT NULL,
  relevance_score INTEGER NOT NULL,
  notes TEXT,
  PRIMARY KEY (item_id, work_log_id)
);
CREATE TABLE IF NOT EXISTS marks (
  user_id TEXT NOT NULL,
  mark_date TEXT NOT NULL,
  mark_type TEXT NOT NULL,
  note TEXT,
  note_path TEXT,
  PRIMARY KEY (user_id, mark_date)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create journal tables: %w", err)
	}
	return nil
}

func (s *SQLiteProjector) Reset(ctx context.Context) error {
	for _, table := range []string{"item_work_logs", "items", "sessions", "marks"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// UpsertSession replaces the session row together with all of its items and
// links in one transaction.
func (s *SQLiteProjector) UpsertSession(ctx context.Context, session domain.Session) error {
	txn, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session upsert: %w", err)
	}
	defer func() { _ = txn.Rollback() }()

	const stmt = `
INSERT INTO sessions (id, user_id, title, session_date, status, tags, completed_at, note_path, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  user_id=excluded.user_id,
  title=excluded.title,
  session_date=excluded.session_date,
  status=excluded.status,
  tags=excluded.tags,
  completed_at=excluded.completed_at,
  note_path=excluded.note_path,
  updated_at=excluded.updated_at;
`
	if _, err := txn.ExecContext(ctx, stmt,
		session.ID,
		session.UserID,
		session.Title,
		session.Date.Format(domain.DateLayout),
		string(session.Status),
		encodeTags(session.Tags),
		nullable(markdown.FormatTime(session.CompletedAt)),
		session.NotePath,
		session.UpdatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	if _, err := txn.ExecContext(ctx, `DELETE FROM item_work_logs WHERE item_id IN (SELECT id FROM items WHERE session_id = ?)`, session.ID); err != nil {
		return fmt.Errorf("clear item links: %w", err)
	}
	if _, err := txn.ExecContext(ctx, `DELETE FROM items WHERE session_id = ?`, session.ID); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	for _, item := range session.Items {
		if _, err := txn.ExecContext(ctx,
			`INSERT INTO items (id, session_id, category, content, due_date, emotion_score, impact_score, priority, tags, completed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			session.ID,
			string(item.Category),
			item.Content,
			nullable(markdown.FormatDate(item.DueDate)),
			nullableInt(item.EmotionScore),
			nullableInt(item.ImpactScore),
			string(item.Priority),
			encodeTags(item.Tags),
			nullable(markdown.FormatTime(item.CompletedAt)),
		); err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
		for _, link := range item.Links {
			if _, err := txn.ExecContext(ctx,
				`INSERT INTO item_work_logs (item_id, work_log_id, relevance_score, notes) VALUES (?, ?, ?, ?)`,
				item.ID, link.WorkLogID, link.Relevance, link.Notes,
			); err != nil {
				return fmt.Errorf("insert item link %s: %w", item.ID, err)
			}
		}
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("commit session upsert: %w", err)
	}
	return nil
}

func (s *SQLiteProjector) UpsertMark(ctx context.Context, mark domain.Mark) error {
	const stmt = `
INSERT INTO marks (user_id, mark_date, mark_type, note, note_path)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id, mark_date) DO UPDATE SET
  mark_type=excluded.mark_type,
  note=excluded.note,
  note_path=excluded.note_path;
`
	if _, err := s.db.ExecContext(ctx, stmt, mark.UserID, mark.Date.Format(domain.DateLayout), string(mark.Type), mark.Note, mark.NotePath); err != nil {
		return fmt.Errorf("upsert mark: %w", err)
	}
	return nil
}

// SessionNote returns the note path indexed for a session id.
func (s *SQLiteProjector) SessionNote(ctx context.Context, sessionID string) (string, bool, error) {
	var path sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT note_path FROM sessions WHERE id = ?`, sessionID).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query session note: %w", err)
	}
	return path.String, path.String != "", nil
}

// SessionNotes returns the note paths of the sessions matching query,
// ordered by session date.
func (s *SQLiteProjector) SessionNotes(ctx context.Context, query domain.RangeQuery) ([]string, error) {
	where, args := rangeClause("session_date", query)
	rows, err := s.db.QueryContext(ctx, `SELECT note_path FROM sessions`+where+` ORDER BY session_date, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var path sql.NullString
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if path.String != "" {
			out = append(out, path.String)
		}
	}
	return out, rows.Err()
}

func (s *SQLiteProjector) Marks(ctx context.Context, query domain.RangeQuery) ([]domain.Mark, error) {
	where, args := rangeClause("mark_date", query)
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, mark_date, mark_type, note, note_path FROM marks`+where+` ORDER BY mark_date, user_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query marks: %w", err)
	}
	defer rows.Close()

	out := []domain.Mark{}
	for rows.Next() {
		var (
			mark           domain.Mark
			day, markType  string
			note, notePath sql.NullString
		)
		if err := rows.Scan(&mark.UserID, &day, &markType, &note, &notePath); err != nil {
			return nil, fmt.Errorf("scan mark: %w", err)
		}
		parsed, err := time.Parse(domain.DateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("decode mark date %q: %w", day, err)
		}
		mark.Date = parsed
		mark.Type = domain.MarkType(markType)
		mark.Note = note.String
		mark.NotePath = notePath.String
		out = append(out, mark)
	}
	return out, rows.Err()
}

// rangeClause builds the WHERE clause for a user and an inclusive date range
// over a YYYY-MM-DD column.
func rangeClause(column string, query domain.RangeQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if query.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, query.UserID)
	}
	if !query.From.IsZero() {
		conds = append(conds, column+" >= ?")
		args = append(args, query.From.Format(domain.DateLayout))
	}
	if !query.To.IsZero() {
		conds = append(conds, column+" <= ?")
		args = append(args, query.To.Format(domain.DateLayout))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
