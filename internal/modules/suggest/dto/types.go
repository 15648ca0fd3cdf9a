package dto

type PluginInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Enabled      bool     `json:"enabled"`
	Binary       string   `json:"binary"`
	Capabilities []string `json:"capabilities"`
}

type DoctorResult struct {
	Name            string `json:"name"`
	ChecksumValid   bool   `json:"checksum_valid"`
	BinaryReachable bool   `json:"binary_reachable"`
	LifecycleOK     bool   `json:"lifecycle_ok"`
	Error           string `json:"error,omitempty"`
}

// SuggestInput selects a provider by name; an empty name picks the first
// enabled provider.
type SuggestInput struct {
	PluginName  string
	Kind        string
	UserID      string
	MetricsJSON string
}

type SuggestionOutput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Plan        []string `json:"plan,omitempty"`
	Source      string   `json:"source"`
}
