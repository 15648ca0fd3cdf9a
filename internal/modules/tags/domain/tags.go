package domain

type NodeKind string

const (
	NodeKindItem NodeKind = "item"
	NodeKindTag  NodeKind = "tag"
)

// ItemTag is one edge of the bipartite item/tag graph.
type ItemTag struct {
	ItemID    string
	ItemLabel string
	Tag       string
}

type TagSummary struct {
	Tag       string
	ItemCount int
}

type Node struct {
	ID    string
	Label string
	Kind  NodeKind
}

// RelatedTag is a tag reachable from a focus tag through shared items.
type RelatedTag struct {
	Tag      string
	Distance int
	Shared   int
}
