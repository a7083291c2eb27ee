package session

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/colorlog/internal/device"
	"codeberg.org/mutker/colorlog/internal/errors"
	"codeberg.org/mutker/colorlog/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource replays lines, then behaves like an idle port: it either fails
// with err or cancels the run and reports a read timeout.
type fakeSource struct {
	lines  []string
	err    error
	cancel context.CancelFunc
	reads  int
}

func (f *fakeSource) ReadLine() ([]byte, error) {
	f.reads++
	if len(f.lines) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		f.cancel()
		return []byte{}, nil
	}
	next := f.lines[0]
	f.lines = f.lines[1:]
	return []byte(next), nil
}

type memRecorder struct {
	lines []string
	err   error
}

func (m *memRecorder) Record(rec *telemetry.Record) error {
	if m.err != nil {
		return m.err
	}
	m.lines = append(m.lines, rec.Raw)
	return nil
}

func (m *memRecorder) Path() string { return "color_data_20261017_143000.csv" }
func (m *memRecorder) Close() error { return nil }

var _ device.Source = (*fakeSource)(nil)

func runLines(t *testing.T, lines ...string) (Summary, *memRecorder, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &fakeSource{lines: lines, cancel: cancel}
	rec := &memRecorder{}
	var out bytes.Buffer

	summary, err := Run(ctx, src, rec, &out)
	require.NoError(t, err)
	return summary, rec, out.String()
}

func TestRunHeaderAndReadings(t *testing.T) {
	summary, rec, out := runLines(t,
		"reading,r,g,b\r\n",
		"1,120,45,200\r\n",
		"2,130,50,210\r\n",
	)

	assert.Equal(t, []string{"reading,r,g,b", "1,120,45,200", "2,130,50,210"}, rec.lines)
	assert.Equal(t, 2, summary.Readings)
	assert.Equal(t, "color_data_20261017_143000.csv", summary.File)

	assert.Contains(t, out, "Reading | Red   | Green | Blue\n")
	assert.Contains(t, out, "      1 | 120   | 45    | 200  \n")
	assert.Contains(t, out, "      2 | 130   | 50    | 210  \n")
	assert.NotContains(t, out, "| r ")
}

func TestRunShortLineStoredNotShown(t *testing.T) {
	summary, rec, out := runLines(t, "noise,1\n")

	assert.Equal(t, []string{"noise,1"}, rec.lines)
	assert.Equal(t, 0, summary.Readings)
	assert.NotContains(t, out, "noise")
	assert.False(t, strings.Contains(out, "      1 |"))
}

func TestRunSkipsEmptyLines(t *testing.T) {
	summary, rec, _ := runLines(t, "", "\r\n", "   \n", "3,1,2,3\n")

	assert.Equal(t, []string{"3,1,2,3"}, rec.lines)
	assert.Equal(t, 1, summary.Readings)
}

func TestRunCounterOnlyCountsParsed(t *testing.T) {
	summary, rec, out := runLines(t,
		"1,10,20,30\n",
		"bad\n",
		"reading again\n",
		"2,11,21,31\n",
		"3,12\n",
		"4,13,23,33,extra\n",
	)

	assert.Equal(t, []string{
		"1,10,20,30", "bad", "reading again", "2,11,21,31", "3,12", "4,13,23,33,extra",
	}, rec.lines, "every line persisted in receive order")
	assert.Equal(t, 3, summary.Readings)
	assert.Contains(t, out, "      3 | 13    | 23    | 33   \n")
}

func TestRunCancelledBeforeFirstRead(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{lines: []string{"1,2,3,4\n"}, cancel: cancel}
	rec := &memRecorder{}

	summary, err := Run(ctx, src, rec, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, src.reads)
	assert.Equal(t, 0, summary.Readings)
	assert.Empty(t, rec.lines)
}

func TestRunSerialFault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cause := stderrors.New("input/output error")
	src := &fakeSource{lines: []string{"1,2,3,4\n"}, err: cause, cancel: cancel}
	rec := &memRecorder{}

	summary, err := Run(ctx, src, rec, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrSerialFault))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, summary.Readings)
	assert.Equal(t, []string{"1,2,3,4"}, rec.lines, "lines before the fault stay persisted")

	var out bytes.Buffer
	PrintSerialError(&out, err)
	assert.Equal(t, "Serial error: input/output error\n", out.String())
}

func TestRunStorageFault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &fakeSource{lines: []string{"1,2,3,4\n"}, cancel: cancel}
	rec := &memRecorder{err: stderrors.New("disk full")}
	var out bytes.Buffer

	summary, err := Run(ctx, src, rec, &out)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrStorageFault))
	assert.Equal(t, 0, summary.Readings, "nothing is shown for a line that was not stored")
	assert.NotContains(t, out.String(), "      1 |")
}

func TestRunWritesCSVFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := telemetry.Config{
		Dir:       t.TempDir(),
		StartedAt: time.Date(2026, time.October, 17, 14, 30, 0, 0, time.Local),
	}
	rec, err := telemetry.NewService(cfg)
	require.NoError(t, err)
	defer rec.Close()

	src := &fakeSource{
		lines:  []string{"reading,r,g,b\n", "1,120,45,200\n", "noise,1\n", "2,130,50,210\n"},
		cancel: cancel,
	}

	summary, err := Run(ctx, src, rec, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, cfg.FilePath(), summary.File)
	assert.Equal(t, 2, summary.Readings)

	data, err := os.ReadFile(summary.File)
	require.NoError(t, err)
	assert.Equal(t, "reading,r,g,b\n1,120,45,200\nnoise,1\n2,130,50,210\n", string(data))
}

func TestWait(t *testing.T) {
	require.NoError(t, Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Wait(ctx, time.Hour)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrCancelled))
	assert.ErrorIs(t, err, context.Canceled)
}
