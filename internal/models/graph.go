package models

// Vector index names managed by the service. One index per embedded node
// type; both must match the active embedding model's dimensionality.
const (
	FunctionIndex = "function_index"
	FileIndex     = "file_index"
)

// RelationshipTypes is the full edge vocabulary of the code graph. Traversal
// expansion is restricted to these types.
var RelationshipTypes = []string{
	"CALLS",
	"USES",
	"DEFINES",
	"CONTAINS",
	"IMPORTS",
	"DEPENDS_ON",
	"READS_FROM",
	"WRITES_TO",
}

// KeywordField selects which entity property a keyword search matches
// against. The closed set keeps user input out of query construction.
type KeywordField string

const (
	KeywordName        KeywordField = "name"
	KeywordDescription KeywordField = "description"
)
