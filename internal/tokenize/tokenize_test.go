package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizePreservesOrderAndDuplicates(t *testing.T) {
	got := Tokenize([]string{"a b", "b c", "a", "b b c"}, " ")
	want := [][]string{{"a", "b"}, {"b", "c"}, {"a"}, {"b", "b", "c"}}
	assert.Equal(t, want, got)
}

func TestTokenizeKeepsEmptyTokens(t *testing.T) {
	got := Tokenize([]string{"a  b", " lead", "trail ", ""}, " ")
	require.Len(t, got, 4)
	assert.Equal(t, []string{"a", "", "b"}, got[0])
	assert.Equal(t, []string{"", "lead"}, got[1])
	assert.Equal(t, []string{"trail", ""}, got[2])
	assert.Equal(t, []string{""}, got[3])
}

func TestTokenizeNoNormalization(t *testing.T) {
	got := Tokenize([]string{"Hello, World!"}, " ")
	assert.Equal(t, [][]string{{"Hello,", "World!"}}, got)
}

func TestTokenizeCustomDelimiter(t *testing.T) {
	got := Tokenize([]string{"x||y||z"}, "||")
	assert.Equal(t, [][]string{{"x", "y", "z"}}, got)

	defaulted := Tokenize([]string{"p q"}, "")
	assert.Equal(t, [][]string{{"p", "q"}}, defaulted)
}

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(nil, " "))
}

func TestJoinRoundTrip(t *testing.T) {
	records := []string{"the quick brown fox", "a  b", "single", "", "tab\tinside word", "ünïcödé tokens"}
	for _, delim := range []string{" ", "\t", "::"} {
		for _, record := range records {
			seq := Tokenize([]string{record}, delim)[0]
			assert.Equal(t, record, Join(seq, delim), "delimiter %q", delim)
		}
	}
}
