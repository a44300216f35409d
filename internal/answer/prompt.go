package answer

import (
	"strings"
	"unicode"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
)

// historyLimit caps how many conversation turns are replayed into the
// prompt.
const historyLimit = 5

const promptHeader = `You are a codebase expert assistant. Provide detailed technical explanations using ONLY the context below.
Response guidelines:
- Keep responses concise and under 200 words total
- Be direct and focused on answering exactly what was asked
- Focus on code functionality, relationships, and structure
- Include only the most important implementation details
- Never add disclaimers or conversational fluff
- ALWAYS start your response with the relevant code snippet in a code block
- Format explanations as:
  ` + "```language" + `
  // The actual code snippet being discussed
  ` + "```" + `
  [File] → [Entity]: (IMPORTANT: Use only the base filename without any path, e.g. "main.py → function_name" not "cloned_repos/xyz/main.py → function_name")
  - Purpose: [Concise purpose]
  - Implementation: [Key technical details]
  - Relationships: [Connections to other entities]`

// BuildPrompt assembles the grounded prompt: the instruction header, the
// most recent conversation turns, the user question, and the graph
// context between --- fences.
func BuildPrompt(query, graphContext string, history []models.ChatTurn) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n\n")

	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		start := len(history) - historyLimit
		if start < 0 {
			start = 0
		}
		for _, turn := range history[start:] {
			role := turn.Role
			if role == "" {
				role = "unknown"
			}
			b.WriteString(capitalize(role))
			b.WriteString(": ")
			b.WriteString(turn.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("User Question: ")
	b.WriteString(query)
	b.WriteString("\n\n")
	b.WriteString("Context from Knowledge Graph:\n---\n")
	b.WriteString(graphContext)
	b.WriteString("\n---")

	return b.String()
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
