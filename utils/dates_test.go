package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"01/15/2020":      "2020-01-15",
		"1-5-2020":        "2020-01-05",
		"06.30.21":        "2021-06-30",
		"03/01/88":        "1988-03-01",
		"03/01/49":        "2049-03-01",
		"03/01/50":        "1950-03-01",
		"20010615":        "2001-06-15",
		"2001 06 15":      "2001-06-15",
		"15 JUN 2001":     "2001-06-15",
		"15 Sept. 2001":   "2001-09-15",
		"January 1, 2020": "2020-01-01",
		"Jan 1 2020":      "2020-01-01",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDate(in), in)
	}
}

func TestNormalizeDate_Rejects(t *testing.T) {
	for _, in := range []string{"", "02/30/2020", "2001 13 45", "99/99/9999", "Smarch 3, 2020", "hello"} {
		assert.Empty(t, NormalizeDate(in), in)
	}
}
