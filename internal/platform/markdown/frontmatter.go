package markdown

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// headerOrder opens every note header; remaining keys follow alphabetically.
var headerOrder = []string{"schema_version", "id", "user_id", "date", "title"}

// SplitFrontmatter separates the YAML header of a vault note from its body.
// Notes without a header decode to an empty map. Notes edited by hand may
// start with a byte order mark, use CRLF, or end at the closing fence.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return map[string]any{}, content, nil
	}
	rest := content[len(fence)+1:]

	var raw, body string
	switch idx := strings.Index(rest, "\n"+fence+"\n"); {
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	case idx >= 0:
		raw, body = rest[:idx], rest[idx+len(fence)+2:]
	case strings.HasSuffix(rest, "\n"+fence):
		raw = strings.TrimSuffix(rest, "\n"+fence)
	default:
		return nil, "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}

	decoded := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return decoded, body, nil
}

// RenderFrontmatter writes meta as a fenced YAML header followed by body.
func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	header := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range headerKeys(meta) {
		value := &yaml.Node{}
		if err := value.Encode(meta[key]); err != nil {
			return "", fmt.Errorf("marshal frontmatter %s: %w", key, err)
		}
		header.Content = append(header.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
	}
	raw, err := yaml.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString(fence + "\n")
	b.Write(raw)
	b.WriteString(fence + "\n")
	if !strings.HasPrefix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(body)
	return b.String(), nil
}

func headerKeys(meta map[string]any) []string {
	keys := make([]string, 0, len(meta))
	for _, key := range headerOrder {
		if _, ok := meta[key]; ok {
			keys = append(keys, key)
		}
	}
	rest := make([]string, 0, len(meta))
	for key := range meta {
		if !isHeaderKey(key) {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func isHeaderKey(key string) bool {
	for _, k := range headerOrder {
		if k == key {
			return true
		}
	}
	return false
}
