package retrieval

import "strings"

// stopWords are query tokens that carry no searchable signal.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "what": {}, "how": {},
	"why": {}, "where": {}, "when": {}, "who": {}, "which": {},
}

// ExtractKeywords lowercases the query, splits it on whitespace, and
// keeps the tokens longer than two runes that are not stop words.
// Duplicates are kept; the store matches by containment anyway.
func ExtractKeywords(query string) []string {
	var keywords []string
	for _, token := range strings.Fields(query) {
		token = strings.ToLower(token)
		if len([]rune(token)) <= 2 {
			continue
		}
		if _, ok := stopWords[token]; ok {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}
