package db

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern lower-cases term and wraps it for a case-insensitive substring match.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// LikeClause renders "LOWER(column) LIKE ? ESCAPE '\'" for use with ContainsPattern.
func LikeClause(column string) string {
	return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column)
}

// AnyLike ORs a substring match of every term against every column. It returns
// an empty clause when there is nothing to match.
func AnyLike(columns []string, terms []string) (string, []any) {
	if len(columns) == 0 || len(terms) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(columns)*len(terms))
	args := make([]any, 0, len(columns)*len(terms))
	for _, term := range terms {
		pattern := ContainsPattern(term)
		for _, column := range columns {
			parts = append(parts, LikeClause(column))
			args = append(args, pattern)
		}
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}
