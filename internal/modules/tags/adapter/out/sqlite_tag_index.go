package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"retrolog/internal/modules/tags/domain"
	tagsout "retrolog/internal/modules/tags/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteTagIndex struct {
	db *sql.DB
}

func NewSQLiteTagIndex(dbPath string) (tagsout.TagIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	idx := &SQLiteTagIndex{db: db}
	if err := idx.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return idx, nil
}

func (p *SQLiteTagIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS item_tags (
  item_id TEXT NOT NULL,
  tag TEXT NOT NULL,
  item_label TEXT NOT NULL,
  PRIMARY KEY (item_id, tag)
);
CREATE INDEX IF NOT EXISTS idx_item_tags_tag ON item_tags(tag);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create item_tags table: %w", err)
	}
	return nil
}

func (p *SQLiteTagIndex) Reset(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM item_tags`); err != nil {
		return fmt.Errorf("reset item tags: %w", err)
	}
	return nil
}

func (p *SQLiteTagIndex) ReplaceItemTags(ctx context.Context, itemID, itemLabel string, tags []string) error {
	txn, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin item tags: %w", err)
	}
	defer func() { _ = txn.Rollback() }()
	if _, err := txn.ExecContext(ctx, `DELETE FROM item_tags WHERE item_id = ?`, itemID); err != nil {
		return fmt.Errorf("clear item tags: %w", err)
	}
	for _, tag := range tags {
		const stmt = `
INSERT INTO item_tags (item_id, tag, item_label)
VALUES (?, ?, ?)
ON CONFLICT(item_id, tag) DO UPDATE SET item_label=excluded.item_label;
`
		if _, err := txn.ExecContext(ctx, stmt, itemID, tag, itemLabel); err != nil {
			return fmt.Errorf("insert item tag: %w", err)
		}
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("commit item tags: %w", err)
	}
	return nil
}

func (p *SQLiteTagIndex) ListTags(ctx context.Context, limit int) ([]domain.TagSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := p.db.QueryContext(ctx, `
SELECT tag, COUNT(*) AS item_count
FROM item_tags
GROUP BY tag
ORDER BY item_count DESC, tag ASC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TagSummary, 0, limit)
	for rows.Next() {
		item := domain.TagSummary{}
		if err := rows.Scan(&item.Tag, &item.ItemCount); err != nil {
			return nil, fmt.Errorf("scan tag summary: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag summary: %w", err)
	}
	return out, nil
}

// Related walks the bipartite graph breadth first. A tag two hops away
// (tag, item, tag) is at distance 1.
func (p *SQLiteTagIndex) Related(ctx context.Context, tag string, depth int) ([]domain.RelatedTag, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return []domain.RelatedTag{}, nil
	}
	g, err := p.loadGraph(ctx)
	if err != nil {
		return nil, err
	}
	start := tagKey(tag)
	if _, ok := g.adjacency[start]; !ok {
		return []domain.RelatedTag{}, nil
	}
	focusItems := g.adjacency[start]

	type queueItem struct {
		key  string
		hops int
	}
	seen := map[string]struct{}{start: {}}
	queue := []queueItem{{key: start}}
	out := make([]domain.RelatedTag, 0)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.hops >= depth*2 {
			continue
		}
		for _, next := range sortedKeys(g.adjacency[current.key]) {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			hops := current.hops + 1
			if strings.HasPrefix(next, "tag:") {
				shared := 0
				for itemKey := range g.adjacency[next] {
					if _, ok := focusItems[itemKey]; ok {
						shared++
					}
				}
				out = append(out, domain.RelatedTag{Tag: strings.TrimPrefix(next, "tag:"), Distance: hops / 2, Shared: shared})
			}
			queue = append(queue, queueItem{key: next, hops: hops})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].Shared != out[j].Shared {
			return out[i].Shared > out[j].Shared
		}
		return out[i].Tag < out[j].Tag
	})
	return out, nil
}

func (p *SQLiteTagIndex) ShortestPath(ctx context.Context, fromTag, toTag string) ([]domain.Node, error) {
	if fromTag == "" || toTag == "" {
		return []domain.Node{}, nil
	}
	g, err := p.loadGraph(ctx)
	if err != nil {
		return nil, err
	}
	from, to := tagKey(fromTag), tagKey(toTag)
	if _, ok := g.adjacency[from]; !ok {
		return []domain.Node{}, nil
	}
	if _, ok := g.adjacency[to]; !ok {
		return []domain.Node{}, nil
	}
	if from == to {
		return g.nodes([]string{from}), nil
	}

	queue := []string{from}
	visited := map[string]struct{}{from: {}}
	prev := map[string]string{}
	found := false
	for len(queue) > 0 && !found {
		current := queue[0]
		queue = queue[1:]
		for _, next := range sortedKeys(g.adjacency[current]) {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			prev[next] = current
			if next == to {
				found = true
				break
			}
			queue = append(queue, next)
		}
	}
	if !found {
		return []domain.Node{}, nil
	}

	path := []string{to}
	for current := to; current != from; {
		parent, ok := prev[current]
		if !ok {
			return []domain.Node{}, nil
		}
		path = append(path, parent)
		current = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return g.nodes(path), nil
}

type tagGraph struct {
	adjacency map[string]map[string]struct{}
	labels    map[string]string
}

func (g tagGraph) nodes(keys []string) []domain.Node {
	out := make([]domain.Node, 0, len(keys))
	for _, key := range keys {
		if id, ok := strings.CutPrefix(key, "tag:"); ok {
			out = append(out, domain.Node{ID: id, Label: "#" + id, Kind: domain.NodeKindTag})
			continue
		}
		id := strings.TrimPrefix(key, "item:")
		out = append(out, domain.Node{ID: id, Label: g.labels[key], Kind: domain.NodeKindItem})
	}
	return out
}

func (p *SQLiteTagIndex) loadGraph(ctx context.Context) (tagGraph, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT item_id, tag, item_label FROM item_tags`)
	if err != nil {
		return tagGraph{}, fmt.Errorf("load tag graph: %w", err)
	}
	defer rows.Close()

	g := tagGraph{adjacency: map[string]map[string]struct{}{}, labels: map[string]string{}}
	for rows.Next() {
		var edge domain.ItemTag
		if err := rows.Scan(&edge.ItemID, &edge.Tag, &edge.ItemLabel); err != nil {
			return tagGraph{}, fmt.Errorf("scan tag graph row: %w", err)
		}
		item, tag := "item:"+edge.ItemID, tagKey(edge.Tag)
		if g.adjacency[item] == nil {
			g.adjacency[item] = map[string]struct{}{}
		}
		if g.adjacency[tag] == nil {
			g.adjacency[tag] = map[string]struct{}{}
		}
		g.adjacency[item][tag] = struct{}{}
		g.adjacency[tag][item] = struct{}{}
		g.labels[item] = edge.ItemLabel
	}
	if err := rows.Err(); err != nil {
		return tagGraph{}, fmt.Errorf("iterate tag graph rows: %w", err)
	}
	return g, nil
}

func tagKey(tag string) string {
	return "tag:" + tag
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
