package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"
	assert.Equal(t, "click line more", SanitizeOneLine(input))
}

func TestSanitizeTextRemovesBidiControls(t *testing.T) {
	assert.Equal(t, "safeexe.txt", SanitizeText("safe\u202eexe.txt"))
}

func TestSanitizeTextKeepsNewlinesAndStripsCSI(t *testing.T) {
	assert.Equal(t, "a\nb", SanitizeText("a\x1b[31m\nb\x1b[0m"))
	assert.Equal(t, "", SanitizeText(""))
}
