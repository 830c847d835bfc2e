package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	VectorField  string // defaults to "embedding"
	Prefilter    string // FT filter expression; empty means "*"
	Vector       []float32
	K            int
	ReturnFields []string
}

// Query is the input for a filtered FT.SEARCH over an index.
type Query struct {
	IndexName    string
	Query        string
	SortBy       string // optional SORTBY field
	SortDesc     bool
	WithScores   bool // request text-match scores (ignored when SortBy is set)
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
