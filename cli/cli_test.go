package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfgFile, verbose, outputFormat = "", false, formatJSON
	combineExplain, crscExplain = false, false

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestParseRatingArg(t *testing.T) {
	cases := []struct {
		arg  string
		want dto.RatingInput
	}{
		{"50", dto.RatingInput{Percentage: 50, Side: dto.SideNone}},
		{"30%", dto.RatingInput{Percentage: 30, Side: dto.SideNone}},
		{"30:left:knee", dto.RatingInput{Percentage: 30, Side: dto.SideLeft, BodyPart: "knee"}},
		{"20:R", dto.RatingInput{Percentage: 20, Side: dto.SideRight}},
		{"10:bilateral", dto.RatingInput{Percentage: 10, Side: dto.SideBilateral}},
	}
	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			got, err := parseRatingArg(tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := parseRatingArg("abc")
	assert.Error(t, err)
	_, err = parseRatingArg("30:up")
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	res := dto.CombinedRatingResult{InputRatings: []int{50, 20}, RawValue: 60, CombinedPercentage: 60}

	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, formatYAML, res))
	assert.Contains(t, buf.String(), "combined_percentage: 60")

	buf.Reset()
	require.NoError(t, writeOutput(&buf, formatJSON, res))
	var decoded dto.CombinedRatingResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, res, decoded)

	assert.Error(t, writeOutput(&buf, "xml", res))
}

func TestDecodeInput(t *testing.T) {
	yamlInput := []byte(`
is_retired: true
retired_pay_amount: 2500
va_waiver_amount: 1200
conditions:
  - condition: {name: PTSD, rating: 30, status: Granted}
    flags: {armed_conflict: true}
`)
	var in dto.CRSCInput
	require.NoError(t, decodeInput(yamlInput, &in))
	assert.True(t, in.IsRetired)
	assert.Equal(t, 1200.0, in.VAWaiverAmount)
	require.Len(t, in.Conditions, 1)
	assert.True(t, in.Conditions[0].Flags.ArmedConflict)

	var again dto.CRSCInput
	require.NoError(t, decodeInput([]byte(`{"is_retired": true}`), &again))
	assert.True(t, again.IsRetired)

	assert.Error(t, decodeInput([]byte("[unclosed"), &again))
}

func TestCombineCommand(t *testing.T) {
	out := execute(t, "combine", "50", "30", "10")
	var res dto.CombinedRatingResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 70, res.CombinedPercentage)
	assert.False(t, res.BilateralApplied)

	out = execute(t, "combine", "--explain", "30:left:knee", "30:right:knee")
	assert.Contains(t, out, "including the bilateral factor")
	assert.Contains(t, out, "combined rating of 60%")
}

func TestCRSCCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
is_retired: true
retired_pay_amount: 2500
va_waiver_amount: 1200
conditions:
  - condition: {name: PTSD, rating: 30, status: Granted}
    flags: {armed_conflict: true}
`), 0o644))

	out := execute(t, "crsc", path, "-o", "yaml")
	assert.Contains(t, out, "crsc_final_payment: 537.42")

	out = execute(t, "crsc", "--explain", path)
	assert.Contains(t, out, "Estimated CRSC payment: $537.42 per month at 30% combat-related.")
}
