package models

// Entity is a knowledge-graph node describing a code construct. Type holds
// the node's most specific label (Function, File, PythonModule, ...).
// Identity for seeding and deduplication is the (Name, FilePath) pair; the
// store does not enforce uniqueness on it, so duplicates are tolerated.
type Entity struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	FilePath    string `json:"filePath"`
	Description string `json:"description,omitempty"`
	CodeSample  string `json:"codeSample,omitempty"`
}

// Ref returns the entity's identity pair.
func (e Entity) Ref() EntityRef {
	return EntityRef{Name: e.Name, FilePath: e.FilePath}
}

// ScoredEntity is a vector-search hit with its cosine similarity.
type ScoredEntity struct {
	Entity
	Score float64 `json:"score"`
}

// EntityRef is the (name, location) identity pair used to anchor traversal
// and path stages on nodes found by vector search.
type EntityRef struct {
	Name     string `json:"name"`
	FilePath string `json:"path"`
}
