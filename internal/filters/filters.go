// Package filters translates named query parameters into record restrictions.
// Each entity has a filter struct whose zero value matches everything; every
// set field narrows the result, and all set fields combine with AND. Filters
// can run two ways: Match evaluates a single record in memory (used by the
// mock repositories), and Scope produces the equivalent GORM query restriction
// (used by the database repositories).
package filters

import "strings"

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// hasPrefixFold reports whether s starts with prefix, case-insensitively.
func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// likeContains builds a LIKE pattern for a case-insensitive substring match.
// The column side is lowered in SQL so the behavior is the same on Postgres
// and SQLite.
func likeContains(substr string) string {
	return "%" + strings.ToLower(substr) + "%"
}

// likePrefix builds a LIKE pattern for a case-insensitive prefix match.
func likePrefix(prefix string) string {
	return strings.ToLower(prefix) + "%"
}
