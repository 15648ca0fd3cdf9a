package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"retrolog/internal/modules/worklog/domain"
	worklogout "retrolog/internal/modules/worklog/port/out"
	"retrolog/internal/platform/markdown"

	_ "modernc.org/sqlite"
)

const dayLayout = "2006-01-02"

type SQLiteProjector struct {
	db *sql.DB
}

func NewSQLiteProjector(dbPath string) (worklogout.WorkLogProjector, error) {
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
CREATE TABLE IF NOT EXISTS work_logs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  category TEXT,
  project TEXT,
  start_time TEXT NOT NULL,
  start_day TEXT NOT NULL,
  end_time TEXT,
  duration_minutes INTEGER,
  mood_score INTEGER,
  productivity_score INTEGER,
  difficulty_score INTEGER,
  tags TEXT NOT NULL,
  billable INTEGER NOT NULL,
  status TEXT NOT NULL,
  note_path TEXT
);
CREATE INDEX IF NOT EXISTS idx_work_logs_user_day ON work_logs(user_id, start_day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create work log tables: %w", err)
	}
	return nil
}

func (s *SQLiteProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM work_logs`); err != nil {
		return fmt.Errorf("reset work_logs: %w", err)
	}
	return nil
}

func (s *SQLiteProjector) Upsert(ctx context.Context, log domain.WorkLog) error {
	tags, err := json.Marshal(log.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	const stmt = `
INSERT INTO work_logs (id, user_id, title, description, category, project, start_time, start_day, end_time, duration_minutes, mood_score, productivity_score, difficulty_score, tags, billable, status, note_path)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  user_id=excluded.user_id,
  title=excluded.title,
  description=excluded.description,
  category=excluded.category,
  project=excluded.project,
  start_time=excluded.start_time,
  start_day=excluded.start_day,
  end_time=excluded.end_time,
  duration_minutes=excluded.duration_minutes,
  mood_score=excluded.mood_score,
  productivity_score=excluded.productivity_score,
  difficulty_score=excluded.difficulty_score,
  tags=excluded.tags,
  billable=excluded.billable,
  status=excluded.status,
  note_path=excluded.note_path;
`
	if _, err := s.db.ExecContext(ctx, stmt,
		log.ID,
		log.UserID,
		log.Title,
		log.Description,
		log.Category,
		log.Project,
		log.StartedAt.Format(time.RFC3339),
		log.StartedAt.Format(dayLayout),
		nullString(markdown.FormatTime(log.EndedAt)),
		nullInt(log.DurationMinutes()),
		nullInt(log.Scores.Mood),
		nullInt(log.Scores.Productivity),
		nullInt(log.Scores.Difficulty),
		string(tags),
		log.Billable,
		string(log.Status),
		log.NotePath,
	); err != nil {
		return fmt.Errorf("upsert work log %s: %w", log.ID, err)
	}
	return nil
}

// List reads work logs back from the projection ordered by start time. The
// day bounds compare against the day the log started in its own offset.
func (s *SQLiteProjector) List(ctx context.Context, query domain.ListQuery) ([]domain.WorkLog, error) {
	var (
		conds []string
		args  []any
	)
	if query.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, query.UserID)
	}
	if !query.From.IsZero() {
		conds = append(conds, "start_day >= ?")
		args = append(args, query.From.Format(dayLayout))
	}
	if !query.To.IsZero() {
		conds = append(conds, "start_day <= ?")
		args = append(args, query.To.Format(dayLayout))
	}
	stmt := `SELECT id, user_id, title, description, category, project, start_time, end_time, mood_score, productivity_score, difficulty_score, tags, billable, status, note_path FROM work_logs`
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	rows, err := s.db.QueryContext(ctx, stmt+" ORDER BY start_time, id", args...)
	if err != nil {
		return nil, fmt.Errorf("query work logs: %w", err)
	}
	defer rows.Close()

	out := []domain.WorkLog{}
	for rows.Next() {
		log, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, log)
	}
	return out, rows.Err()
}

func scanWorkLog(rows *sql.Rows) (domain.WorkLog, error) {
	var (
		log                            domain.WorkLog
		description, category, project sql.NullString
		started, status, tags          string
		ended, notePath                sql.NullString
		mood, productivity, difficulty sql.NullInt64
	)
	if err := rows.Scan(&log.ID, &log.UserID, &log.Title, &description, &category, &project, &started, &ended,
		&mood, &productivity, &difficulty, &tags, &log.Billable, &status, &notePath); err != nil {
		return domain.WorkLog{}, fmt.Errorf("scan work log: %w", err)
	}
	startedAt, err := time.Parse(time.RFC3339, started)
	if err != nil {
		return domain.WorkLog{}, fmt.Errorf("decode start of %s: %w", log.ID, err)
	}
	log.StartedAt = startedAt
	log.EndedAt = markdown.AsTimePtr(ended.String)
	log.Description = description.String
	log.Category = category.String
	log.Project = project.String
	log.Status = domain.Status(status)
	log.NotePath = notePath.String
	log.Scores = domain.Scores{Mood: intOrNil(mood), Productivity: intOrNil(productivity), Difficulty: intOrNil(difficulty)}
	if err := json.Unmarshal([]byte(tags), &log.Tags); err != nil {
		return domain.WorkLog{}, fmt.Errorf("decode tags of %s: %w", log.ID, err)
	}
	return log, nil
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
