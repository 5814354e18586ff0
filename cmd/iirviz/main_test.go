package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-iirviz/dsp/filter/iir"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := run(append([]string{"-points", "256"}, args...), &out)

	return out.String(), err
}

func TestRunIdentityFilter(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)

	assert.Contains(t, out, "y[n] = x[n]\n")
	assert.Contains(t, out, "H(z) = 1\n")
	assert.Contains(t, out, "zeros (0):")
	assert.Contains(t, out, "poles (0):")
	assert.Contains(t, out, "filter is stable")
	assert.Contains(t, out, "response (linear, 256 points)")
	assert.Contains(t, out, "flat")
}

func TestRunOnePoleFilter(t *testing.T) {
	out, err := runCLI(t, "a1=0.5", "b1=0.9")
	require.NoError(t, err)

	assert.Contains(t, out, "y[n] = x[n] + 0.5x[n - 1] + 0.9y[n - 1]")
	assert.Contains(t, out, "H(z) = (1 + 0.5z^-1) / (1 - 0.9z^-1)")
	assert.Contains(t, out, "-0.500000\t|z| = 0.500000")
	assert.Contains(t, out, "0.900000\t|z| = 0.900000")
	assert.Contains(t, out, "gain above unity")
}

func TestRunConjugatePoles(t *testing.T) {
	// Poles at 0.5 ± 0.5j: z^2 - z + 0.5.
	out, err := runCLI(t, "b1=1", "b2=-0.5")
	require.NoError(t, err)

	assert.Contains(t, out, "poles (2):")
	assert.Contains(t, out, "0.500000 ± 0.500000j")
	assert.Contains(t, out, "filter is stable")
}

func TestRunUnstableFilter(t *testing.T) {
	out, err := runCLI(t, "b1=1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "filter is unstable")

	out, err = runCLI(t, "b1=1")
	require.NoError(t, err)
	assert.Contains(t, out, "filter is marginally stable")
}

func TestRunLogMappingPrintsGrid(t *testing.T) {
	out, err := runCLI(t, "-log", "a1=0.5")
	require.NoError(t, err)

	assert.Contains(t, out, "response (log, 256 points)")
	assert.Contains(t, out, "grid Hz")
	assert.Contains(t, out, "20000")
}

func TestRunFFTTable(t *testing.T) {
	for _, extra := range [][]string{nil, {"-fft"}} {
		args := append(append([]string{"-rows", "5"}, extra...), "a1=0.5", "b1=0.25")

		out, err := runCLI(t, args...)
		require.NoError(t, err)

		// DC gain (1 + 0.5) / (1 - 0.25).
		assert.Contains(t, out, "peak gain 2.000000 (6.02 dB)", "args %v", args)
	}
}

func TestRunRowsLimitTable(t *testing.T) {
	out, err := runCLI(t, "-rows", "3")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")

	var header int

	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "Hz") {
			header = i
		}
	}

	require.NotZero(t, header)

	var tableRows int

	for _, l := range lines[header+1:] {
		if strings.TrimSpace(l) != "" {
			tableRows++
		}
	}

	assert.Equal(t, 3, tableRows)
	assert.Contains(t, out, "22050.0")
}

func TestRunArgumentErrors(t *testing.T) {
	_, err := runCLI(t, "a1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want name=value")

	_, err = runCLI(t, "a9=1")
	require.ErrorIs(t, err, iir.ErrUnknownCoefficient)

	_, err = runCLI(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.yaml")
	data := `
order: 8
points: 512
log_base: 100
sample_rate: 48000
logarithmic: true
coefficients:
  a1: "0.5"
  b1: "0.25"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	fc, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, fc.Order)
	assert.Equal(t, 512, fc.Points)
	assert.True(t, fc.Logarithmic)
	assert.Len(t, fc.options(), 4)
	assert.Equal(t, []edit{{"a1", "0.5"}, {"b1", "0.25"}}, fc.edits())

	var out bytes.Buffer
	require.NoError(t, run([]string{"-config", path}, &out))
	assert.Contains(t, out.String(), "response (log, 512 points)")
	assert.Contains(t, out.String(), "y[n] = x[n] + 0.5x[n - 1] + 0.25y[n - 1]")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("order: [1, 2"), 0o644))

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func decodeWAV(t *testing.T, path string) ([]int, int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	return buf.Data, buf.Format.SampleRate
}

func TestRunRendersWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	_, err := runCLI(t, "-wav", path, "-seconds", "0.25", "a1=0.5", "b1=0.5")
	require.NoError(t, err)

	data, rate := decodeWAV(t, path)
	assert.Equal(t, 44100, rate)
	require.Len(t, data, 11025)

	var nonZero int

	for _, v := range data {
		require.LessOrEqual(t, v, 32767)
		require.GreaterOrEqual(t, v, -32767)

		if v != 0 {
			nonZero++
		}
	}

	assert.Greater(t, nonZero, len(data)/2)
}

func TestRunUnstableWAVIsSilent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silent.wav")

	_, err := runCLI(t, "-wav", path, "-seconds", "0.1", "b1=2")
	require.NoError(t, err)

	data, _ := decodeWAV(t, path)
	require.Len(t, data, 4410)

	for i, v := range data {
		require.Zero(t, v, "sample %d", i)
	}
}

func TestRunExcitations(t *testing.T) {
	dir := t.TempDir()

	gauss := filepath.Join(dir, "gauss.wav")
	_, err := runCLI(t, "-wav", gauss, "-seconds", "0.1", "-noise", "gauss", "b1=0.5")
	require.NoError(t, err)

	data, _ := decodeWAV(t, gauss)
	require.Len(t, data, 4410)

	var nonZero int

	for _, v := range data {
		if v != 0 {
			nonZero++
		}
	}

	assert.Greater(t, nonZero, len(data)/2)

	impulse := filepath.Join(dir, "impulse.wav")
	_, err = runCLI(t, "-wav", impulse, "-seconds", "0.1", "-noise", "impulse", "-noscale", "a0=0.5", "b1=0.5")
	require.NoError(t, err)

	data, _ = decodeWAV(t, impulse)
	require.Len(t, data, 4410)
	assert.Equal(t, []int{16384, 8192, 4096, 2048}, data[:4])
	assert.Zero(t, data[len(data)-1])

	_, err = runCLI(t, "-noise", "pink")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown excitation")
}

func TestRunTableShowsUnwrappedPhase(t *testing.T) {
	out, err := runCLI(t, "-rows", "2", "a0=0", "a4=1")
	require.NoError(t, err)

	// A four sample delay turns by -4*pi up to Nyquist.
	assert.Contains(t, out, "unwrapped [deg]")
	assert.Contains(t, out, "-720.00")
}

func TestQuantize16Clamps(t *testing.T) {
	assert.Equal(t, 32767, quantize16(1.5))
	assert.Equal(t, -32767, quantize16(-3))
	assert.Equal(t, 0, quantize16(0))
	assert.Equal(t, 16384, quantize16(0.5))
}

func TestTableRows(t *testing.T) {
	assert.Equal(t, []int{0, 127, 255}, tableRows(256, 3))
	assert.Equal(t, []int{255}, tableRows(256, 1))
	assert.Equal(t, []int{0, 1}, tableRows(2, 16))
	assert.Nil(t, tableRows(0, 4))
}

func TestNearestSample(t *testing.T) {
	assert.Equal(t, 0, nearestSample(0, 100))
	assert.Equal(t, 99, nearestSample(1, 100))
	assert.Equal(t, 49, nearestSample(0.5, 100))
}

func TestReportKeepsFirstError(t *testing.T) {
	r := &report{w: failingWriter{}}
	r.printf("a")
	r.printf("b")
	require.ErrorIs(t, r.err, io.ErrShortWrite)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }
