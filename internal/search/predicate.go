// Package search compiles free-text catalog queries into parameterized
// SQL predicates.
package search

import (
	"fmt"
	"strings"
)

// Predicate is a compiled disjunctive match over the lesson fields: an
// item matches when the term occurs case-insensitively in subject or
// location, or occurs in the decimal rendering of price or spaces.
// The term is always matched as a literal substring; it never reaches
// the store as anything other than a bound query argument.
type Predicate struct {
	textPattern    string
	numericPattern string
}

// Compile turns a raw query string into a Predicate. ok is false when
// the term is absent or whitespace-only, which callers must treat as
// "empty result set", not "match everything".
func Compile(term string) (Predicate, bool) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return Predicate{}, false
	}
	return Predicate{
		textPattern:    "%" + escapeLike(term) + "%",
		numericPattern: "%" + escapeLike(trimmed) + "%",
	}, true
}

// SQL renders the predicate as a WHERE condition with placeholders
// starting at $argOffset. It consumes exactly two arguments, in the
// order Args returns them.
func (p Predicate) SQL(argOffset int) string {
	return fmt.Sprintf(
		`(subject ILIKE $%[1]d ESCAPE '\' OR location ILIKE $%[1]d ESCAPE '\' OR price::text LIKE $%[2]d ESCAPE '\' OR spaces::text LIKE $%[2]d ESCAPE '\')`,
		argOffset, argOffset+1,
	)
}

// Args returns the bound arguments for SQL, in placeholder order.
func (p Predicate) Args() []any {
	return []any{p.textPattern, p.numericPattern}
}

// escapeLike neutralizes LIKE metacharacters so the term matches only
// as a literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
