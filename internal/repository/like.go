package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps a user-supplied term for a substring ILIKE match,
// escaping the metacharacters so "%" and "_" match literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
