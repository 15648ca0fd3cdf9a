package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"retrolog/internal/modules/analytics/domain"
	analyticsout "retrolog/internal/modules/analytics/port/out"
	apperrors "retrolog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// timestampLayout has a fixed width so generated_at sorts as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteInsightStore is the insight sink. Rows are written once and only the
// active flag changes afterwards.
type SQLiteInsightStore struct {
	db *sql.DB
}

func NewSQLiteInsightStore(dbPath string) (analyticsout.InsightStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteInsightStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteInsightStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS insights (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  session_id TEXT,
  insight_type TEXT NOT NULL,
  kind TEXT NOT NULL,
  confidence_score REAL NOT NULL,
  content TEXT NOT NULL,
  data_source TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  period_start TEXT NOT NULL,
  period_end TEXT NOT NULL,
  generated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_insights_user_generated ON insights(user_id, generated_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create insights table: %w", err)
	}
	return nil
}

func (s *SQLiteInsightStore) Save(ctx context.Context, insight domain.Insight) error {
	const stmt = `
INSERT INTO insights (id, user_id, session_id, insight_type, kind, confidence_score, content, data_source, is_active, period_start, period_end, generated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	if _, err := s.db.ExecContext(ctx, stmt,
		insight.ID,
		insight.UserID,
		sql.NullString{String: insight.SessionID, Valid: insight.SessionID != ""},
		string(insight.Type),
		string(insight.Kind),
		insight.Confidence,
		string(insight.Content),
		insight.DataSource,
		insight.Active,
		domain.DayKey(insight.PeriodStart),
		domain.DayKey(insight.PeriodEnd),
		insight.GeneratedAt.UTC().Format(timestampLayout),
	); err != nil {
		return fmt.Errorf("insert insight %s: %w", insight.ID, err)
	}
	return nil
}

func (s *SQLiteInsightStore) List(ctx context.Context, filter domain.InsightFilter) ([]domain.Insight, error) {
	query := `SELECT id, user_id, session_id, insight_type, kind, confidence_score, content, data_source, is_active, period_start, period_end, generated_at FROM insights`
	clauses := []string{}
	args := []any{}
	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Type != "" {
		clauses = append(clauses, "insight_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.ActiveOnly {
		clauses = append(clauses, "is_active = 1")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY generated_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query insights: %w", err)
	}
	defer rows.Close()

	out := []domain.Insight{}
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, insight)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate insights: %w", err)
	}
	return out, nil
}

func (s *SQLiteInsightStore) SetActive(ctx context.Context, id string, active bool) (domain.Insight, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE insights SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return domain.Insight{}, fmt.Errorf("update insight %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.Insight{}, fmt.Errorf("%w: insight %s", apperrors.ErrNotFound, id)
	}
	row := s.db.QueryRowContext(ctx, `SELECT id, user_id, session_id, insight_type, kind, confidence_score, content, data_source, is_active, period_start, period_end, generated_at FROM insights WHERE id = ?`, id)
	insight, err := scanInsight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Insight{}, fmt.Errorf("%w: insight %s", apperrors.ErrNotFound, id)
	}
	return insight, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInsight(row scanner) (domain.Insight, error) {
	var (
		insight                      domain.Insight
		sessionID                    sql.NullString
		insightType, kind, content   string
		periodStart, periodEnd, when string
	)
	if err := row.Scan(&insight.ID, &insight.UserID, &sessionID, &insightType, &kind, &insight.Confidence, &content, &insight.DataSource, &insight.Active, &periodStart, &periodEnd, &when); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Insight{}, err
		}
		return domain.Insight{}, fmt.Errorf("scan insight: %w", err)
	}
	insight.SessionID = sessionID.String
	insight.Type = domain.InsightType(insightType)
	insight.Kind = domain.AnalysisKind(kind)
	insight.Content = []byte(content)
	var err error
	if insight.PeriodStart, err = domain.ParseDay(periodStart); err != nil {
		return domain.Insight{}, err
	}
	if insight.PeriodEnd, err = domain.ParseDay(periodEnd); err != nil {
		return domain.Insight{}, err
	}
	if insight.GeneratedAt, err = time.Parse(timestampLayout, when); err != nil {
		return domain.Insight{}, fmt.Errorf("parse generated_at: %w", err)
	}
	return insight, nil
}
