package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	raw := "SERVICE  CONNECTION\r\nfor  tinnitus\x07 is\tgranted\u00a0\u2014 10%\r\n\r\n\ufb01nal"

	text := NormalizeText(raw)

	assert.Equal(t, "SERVICE CONNECTION\nfor tinnitus is granted - 10%\n\nfinal", text.Raw)
	assert.Equal(t, "SERVICE CONNECTION for tinnitus is granted - 10% final", text.Normalized)
	assert.Equal(t, []string{"SERVICE CONNECTION", "for tinnitus is granted - 10%", "final"}, text.Lines())
}

func TestNormalizeText_Empty(t *testing.T) {
	assert.Equal(t, Text{}, NormalizeText(""))
	assert.Nil(t, NormalizeText("").Lines())
}

func TestNormalizePages(t *testing.T) {
	text := NormalizePages([]string{"page one", "page two"})
	assert.Equal(t, "page one\npage two", text.Raw)
	assert.Equal(t, "page one page two", text.Normalized)
}
