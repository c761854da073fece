package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	algosht "github.com/cwbudde/algo-sht"
	"github.com/cwbudde/algo-sht/textio"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCoefficients(t *testing.T, path string, flm []complex128) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, textio.WriteCoefficients(&buf, flm))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func readCoefficients(t *testing.T, path string, L int) []complex128 {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer f.Close()

	flm, err := textio.ReadCoefficients(f, L)
	require.NoError(t, err)

	return flm
}

func run(args ...string) (string, error) {
	var out, errOut bytes.Buffer

	err := Run(args, strings.NewReader(""), &out, &errOut)

	return out.String(), err
}

func testCoefficients(L, spin int) []complex128 {
	flm := make([]complex128, L*L)

	for ind := range flm {
		el, mm := algosht.FromIndex(ind)
		if el < absInt(spin) {
			continue
		}

		flm[ind] = complex(float64(el)/4-0.5, float64(mm)/8)
	}

	return flm
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func TestInverseForwardRoundTrip(t *testing.T) {
	dir := t.TempDir()
	flmPath := filepath.Join(dir, "flm.txt")
	fPath := filepath.Join(dir, "f.txt")
	outPath := filepath.Join(dir, "flm2.txt")

	for _, method := range []string{"DH", "MW", "GL"} {
		want := testCoefficients(5, 1)
		writeCoefficients(t, flmPath, want)

		_, err := run("inverse", "--inp="+flmPath, "--out="+fPath, "--method="+method, "-L", "5", "--spin=1")
		require.NoError(t, err, method)

		_, err = run("forward", "--inp", fPath, "--out", outPath, "--method", method, "--band-limit=5", "--spin", "1")
		require.NoError(t, err, method)

		got := readCoefficients(t, outPath, 5)
		require.Len(t, got, len(want))

		for i := range want {
			assert.InDelta(t, real(want[i]), real(got[i]), 1e-9, "%s re[%d]", method, i)
			assert.InDelta(t, imag(want[i]), imag(got[i]), 1e-9, "%s im[%d]", method, i)
		}
	}
}

func TestRealRoundTripStdout(t *testing.T) {
	dir := t.TempDir()
	flmPath := filepath.Join(dir, "flm.txt")
	fPath := filepath.Join(dir, "f.txt")

	// Y_00 only: a constant real function.
	flm := make([]complex128, 9)
	flm[0] = 2
	writeCoefficients(t, flmPath, flm)

	_, err := run("inverse", "--inp="+flmPath, "--out="+fPath, "--method=DH", "-L3", "--reality=1")
	require.NoError(t, err)

	out, err := run("forward", "--inp="+fPath, "--out=-", "--method=DH", "-L3", "--reality=1")
	require.NoError(t, err)

	got, err := textio.ReadCoefficients(strings.NewReader(out), 3)
	require.NoError(t, err)
	assert.InDelta(t, 2, real(got[0]), 1e-12)

	for i := 1; i < len(got); i++ {
		assert.InDelta(t, 0, real(got[i]), 1e-12)
		assert.InDelta(t, 0, imag(got[i]), 1e-12)
	}
}

func TestRealWithSpinRejected(t *testing.T) {
	_, err := run("forward", "--inp=in", "--out=out", "-L", "8", "--spin=2", "--reality=1")
	require.Error(t, err)
	assert.ErrorIs(t, err, algosht.ErrArgumentInvalid)
	assert.ErrorIs(t, err, algosht.ErrSpinReality)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing input", []string{"forward", "--out=x", "-L", "4"}, "--inp is required"},
		{"missing output", []string{"inverse", "--inp=x", "-L", "4"}, "--out is required"},
		{"bad method", []string{"forward", "--inp=x", "--out=y", "-L", "4", "--method=HEALPix"}, "unknown sampling scheme"},
		{"bad reality", []string{"forward", "--inp=x", "--out=y", "-L", "4", "--reality=2"}, "--reality"},
		{"missing band-limit", []string{"forward", "--inp=x", "--out=y"}, "band-limit"},
		{"flag without argument", []string{"forward", "--inp"}, "needs an argument"},
		{"missing file", []string{"forward", "--inp=/nonexistent/in", "--out=y", "-L", "4"}, "failed to open input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUnknownFlagIgnored(t *testing.T) {
	dir := t.TempDir()
	flmPath := filepath.Join(dir, "flm.txt")
	fPath := filepath.Join(dir, "f.txt")
	writeCoefficients(t, flmPath, testCoefficients(2, 0))

	_, err := run("inverse", "--inp="+flmPath, "--out="+fPath, "-L", "2", "--colour=blue")
	require.NoError(t, err)

	out, err := run("forward", "--inp="+fPath, "--out=-", "--colour", "-L", "2")
	require.NoError(t, err)

	got, err := textio.ReadCoefficients(strings.NewReader(out), 2)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestToOptionsFallsBackToFlags(t *testing.T) {
	v, err := newViper(&cobra.Command{}, "")
	require.NoError(t, err)

	t.Setenv("SSHT_SPIN", "-1")

	flags := &TransformFlags{Input: "in.txt", Output: "-", Method: "GL", BandLimit: 6, Spin: 2, Reality: 1}
	opts := flags.ToOptions(directionInverse, v, Streams{})

	assert.Equal(t, directionInverse, opts.Direction)
	assert.Equal(t, "in.txt", opts.Input)
	assert.Equal(t, "-", opts.Output)
	assert.Equal(t, 6, opts.BandLimit)
	assert.Equal(t, -1, opts.Spin)

	require.NoError(t, opts.Complete())
	assert.Equal(t, algosht.GL, opts.Scheme)
	assert.True(t, opts.Real)
}

func TestTransformHelp(t *testing.T) {
	out, err := run("forward", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "two dashes")
	assert.Contains(t, out, "--band-limit")
}

func TestEnvironmentAndConfig(t *testing.T) {
	dir := t.TempDir()
	flmPath := filepath.Join(dir, "flm.txt")
	fPath := filepath.Join(dir, "f.txt")
	cfgPath := filepath.Join(dir, "ssht.yaml")

	writeCoefficients(t, flmPath, testCoefficients(3, 0))
	require.NoError(t, os.WriteFile(cfgPath, []byte("method: GL\nband-limit: 2\n"), 0o600))

	// The environment overrides the config file.
	t.Setenv("SSHT_BAND_LIMIT", "3")

	_, err := run("inverse", "--config="+cfgPath, "--inp="+flmPath, "--out="+fPath)
	require.NoError(t, err)

	f, err := os.Open(fPath)
	require.NoError(t, err)

	defer f.Close()

	s, err := textio.ReadSamples(f, algosht.GL, 3)
	require.NoError(t, err)
	assert.Len(t, s.Data, algosht.SampleCount(algosht.GL, 3))
}

func TestMetricsFile(t *testing.T) {
	dir := t.TempDir()
	flmPath := filepath.Join(dir, "flm.txt")
	metricsPath := filepath.Join(dir, "metrics.prom")

	writeCoefficients(t, flmPath, testCoefficients(4, 0))

	_, err := run("inverse", "--inp="+flmPath, "--out=-", "-L", "4", "--metrics-file="+metricsPath, "--workers=2", "--verbosity=4")
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ssht_transforms_total{op="inverse",scheme="MW",status="ok"} 1`)
}
