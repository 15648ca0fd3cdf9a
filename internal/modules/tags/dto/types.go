package dto

type TagSummaryOutput struct {
	Tag       string `json:"tag"`
	ItemCount int    `json:"item_count"`
}

type RelatedTagOutput struct {
	Tag      string `json:"tag"`
	Distance int    `json:"distance"`
	Shared   int    `json:"shared_items"`
}

type RelatedOutput struct {
	Tag     string             `json:"tag"`
	Depth   int                `json:"depth"`
	Related []RelatedTagOutput `json:"related"`
}

type NodeOutput struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

type PathOutput struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Found bool         `json:"found"`
	Nodes []NodeOutput `json:"nodes"`
}
