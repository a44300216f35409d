package retrieval

import (
	"fmt"
	"strings"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
)

// Stage identifies which retrieval pass produced a snippet.
type Stage string

const (
	StageVector             Stage = "vector"
	StageTraversal          Stage = "traversal"
	StagePath               Stage = "path"
	StageKeywordName        Stage = "keyword-name"
	StageKeywordDescription Stage = "keyword-description"
	StageFileSummary        Stage = "file-summary"
	StageFileListing        Stage = "file-listing"
)

// Snippet is one piece of grounding evidence. Text is the sentence fed
// to the generative model; Score is only set for vector hits.
type Snippet struct {
	Stage Stage
	Text  string
	Score float64
}

// Result is what one retrieval pass hands to answer synthesis. Context
// is the snippet texts joined with newlines, or NoContextFound when the
// graph yielded nothing.
type Result struct {
	Snippets []Snippet
	Context  string
}

// NoContextFound is the context handed to the model when every stage
// came back empty.
const NoContextFound = "No specific context found in the graph."

func entitySentence(prefix string, e models.Entity) string {
	path := e.FilePath
	if path == "" {
		path = "unknown path"
	}
	text := fmt.Sprintf("%sIn file '%s', there is a %s called '%s'. %s",
		prefix, path, entityType(e), e.Name, e.Description)
	return withCodeBlock(text, e.CodeSample)
}

func keywordNameSentence(e models.Entity) string {
	text := fmt.Sprintf("Found a %s named '%s' in '%s' that matches your query. %s",
		entityType(e), e.Name, e.FilePath, e.Description)
	return withCodeBlock(text, e.CodeSample)
}

func keywordDescriptionSentence(e models.Entity) string {
	text := fmt.Sprintf("The %s '%s' in '%s' appears relevant to your question. %s",
		entityType(e), e.Name, e.FilePath, e.Description)
	return withCodeBlock(text, e.CodeSample)
}

func fileSummarySentence(f models.FileContext) string {
	repo := f.RepoID
	if repo == "" {
		repo = "unknown"
	}
	return fmt.Sprintf("The %s file '%s' is part of repository '%s'.", f.Kind.Display(), f.Path, repo)
}

func fileListingSentence(path string, children []models.Entity) string {
	items := make([]string, 0, len(children))
	for _, child := range children {
		items = append(items, fmt.Sprintf("%s '%s'", entityType(child), child.Name))
	}
	return fmt.Sprintf("The file '%s' contains: %s.", path, strings.Join(items, ", "))
}

// entityType lowers the entity's label for prose, falling back to a
// generic word for unlabeled nodes.
func entityType(e models.Entity) string {
	if e.Type == "" {
		return "entity"
	}
	return strings.ToLower(e.Type)
}

func withCodeBlock(text, code string) string {
	if code == "" {
		return text
	}
	return text + "\nCode:\n```\n" + code + "\n```"
}
