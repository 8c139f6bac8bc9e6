package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// charMeasurer charges a fixed pixel width per rune.
type charMeasurer struct {
	perRune int
}

func (m charMeasurer) Width(s string) int {
	return m.perRune * len([]rune(s))
}

func TestFitTextReturnsFittingStringUnchanged(t *testing.T) {
	m := charMeasurer{perRune: 7}
	assert.Equal(t, "MA1021-AL01", fitText(m, "MA1021-AL01", 140))
}

func TestFitTextTruncatesWithMarker(t *testing.T) {
	m := charMeasurer{perRune: 7}
	long := strings.Repeat("x", 30) // 210px at full length

	fitted := fitText(m, long, 140)
	assert.True(t, strings.HasSuffix(fitted, truncationMarker))
	assert.Less(t, len(fitted), len(long))
	assert.LessOrEqual(t, m.Width(fitted), 140)
}

func TestFitTextIsIdempotent(t *testing.T) {
	m := charMeasurer{perRune: 7}
	long := strings.Repeat("label ", 10)

	fitted := fitText(m, long, 140)
	assert.Equal(t, fitted, fitText(m, fitted, 140))
}

func TestFitTextEmptyBudget(t *testing.T) {
	m := charMeasurer{perRune: 7}
	assert.Equal(t, truncationMarker, fitText(m, "anything", 0))
	assert.Equal(t, "", fitText(m, "", 0))
}
