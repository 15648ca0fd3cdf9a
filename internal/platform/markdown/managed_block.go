package markdown

import "strings"

// ReplaceManagedBlock swaps the generated section between the markers, or
// appends one when the body has none yet. Text outside the markers is kept.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	block := startMarker + "\n" + generated + "\n" + endMarker

	if start >= 0 && end > start {
		end += len(endMarker)
		return body[:start] + block + body[end:]
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// ChecklistEntry is one line of a rendered task list.
type ChecklistEntry struct {
	Done  bool
	Label string
}

func RenderChecklist(entries []ChecklistEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		box := "[ ]"
		if entry.Done {
			box = "[x]"
		}
		label := strings.ReplaceAll(strings.TrimSpace(entry.Label), "\n", " ")
		lines = append(lines, "- "+box+" "+label)
	}
	return strings.Join(lines, "\n")
}
