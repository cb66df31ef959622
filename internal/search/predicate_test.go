package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_EmptyTermSignalsEmptyResult(t *testing.T) {
	for _, term := range []string{"", "   ", "\t\n "} {
		_, ok := Compile(term)
		assert.False(t, ok, "term %q should compile to the empty-result marker", term)
	}
}

func TestCompile_BuildsSubstringPatterns(t *testing.T) {
	p, ok := Compile("Maths")
	require.True(t, ok)

	args := p.Args()
	require.Len(t, args, 2)
	assert.Equal(t, "%Maths%", args[0])
	assert.Equal(t, "%Maths%", args[1])
}

func TestCompile_NumericPatternIsTrimmed(t *testing.T) {
	p, ok := Compile("  50 ")
	require.True(t, ok)

	args := p.Args()
	assert.Equal(t, "%  50 %", args[0], "text match keeps the raw term")
	assert.Equal(t, "%50%", args[1], "numeric match uses the trimmed term")
}

func TestCompile_EscapesLikeMetacharacters(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"100%", `%100\%%`},
		{"under_score", `%under\_score%`},
		{`back\slash`, `%back\\slash%`},
		{`%_\`, `%\%\_\\%`},
	}
	for _, tt := range tests {
		p, ok := Compile(tt.term)
		require.True(t, ok)
		assert.Equal(t, tt.want, p.Args()[0], "term %q", tt.term)
	}
}

func TestCompile_PatternSpecialsStayLiteral(t *testing.T) {
	// Regex-style metacharacters have no meaning in LIKE patterns and
	// must pass through unchanged as literal text.
	p, ok := Compile("this.sleep(100)*")
	require.True(t, ok)
	assert.Equal(t, "%this.sleep(100)*%", p.Args()[0])
}

func TestPredicate_SQL(t *testing.T) {
	p, ok := Compile("London")
	require.True(t, ok)

	clause := p.SQL(1)
	assert.Contains(t, clause, "subject ILIKE $1")
	assert.Contains(t, clause, "location ILIKE $1")
	assert.Contains(t, clause, "price::text LIKE $2")
	assert.Contains(t, clause, "spaces::text LIKE $2")
	assert.Equal(t, 3, strings.Count(clause, " OR "))
}

func TestPredicate_SQLRespectsArgOffset(t *testing.T) {
	p, ok := Compile("5")
	require.True(t, ok)

	clause := p.SQL(3)
	assert.Contains(t, clause, "subject ILIKE $3")
	assert.Contains(t, clause, "price::text LIKE $4")
	assert.NotContains(t, clause, "$1")
}
