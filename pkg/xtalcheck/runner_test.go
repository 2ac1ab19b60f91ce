package xtalcheck

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

type recordingHandler struct {
	mu      sync.Mutex
	states  []StateChangeEvent
	reports []Report
}

func (h *recordingHandler) OnStateChange(e StateChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, e)
}

func (h *recordingHandler) OnReport(r Report) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reports = append(h.reports, r)
}

func (h *recordingHandler) reportCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.reports)
}

type stubPlugin struct {
	name    string
	initErr error
	ctx     context.Context
	cfg     PluginConfig
	order   *[]string
}

func (p *stubPlugin) Name() string { return p.name }

func (p *stubPlugin) Initialize(ctx context.Context, cfg PluginConfig) error {
	p.ctx = ctx
	p.cfg = cfg
	*p.order = append(*p.order, "init:"+p.name)
	return p.initErr
}

func (p *stubPlugin) Shutdown(ctx context.Context) error {
	*p.order = append(*p.order, "shutdown:"+p.name)
	return nil
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoClocks)

	_, err = New(Config{Clocks: []Clock{{Name: "cpu"}}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunner_Check(t *testing.T) {
	r, err := New(Config{
		Context: "pacman",
		Clocks: []Clock{
			{Name: "maincpu", Frequency: 18_432_000, Divisor: 6},
			{Name: "sound", Frequency: 18_432_001},
			{Name: "rtc", Frequency: 32_768},
		},
	})
	require.NoError(t, err)

	report, err := r.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	assert.False(t, report.OK())
	assert.False(t, report.Aborted)

	failures := report.Failures()
	require.Len(t, failures, 1)
	ufe := failures[0].Unknown()
	require.NotNil(t, ufe)
	assert.Equal(t, "pacman: sound", ufe.Context)
	assert.Equal(t, 18_432_000.0, ufe.Low.Value)
	assert.True(t, ufe.High.Valid)

	assert.Nil(t, report.Results[0].Unknown())
	assert.Equal(t, report, r.LastReport())
}

func TestRunner_FailFast(t *testing.T) {
	r, err := New(Config{
		FailFast: true,
		Clocks: []Clock{
			{Name: "a", Frequency: 1_234_567},
			{Name: "b", Frequency: 8_000_000},
		},
	})
	require.NoError(t, err)

	report, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Aborted)
	assert.Len(t, report.Results, 1)
}

func TestRunner_CustomValidator(t *testing.T) {
	v := xtal.New(xtal.MustCatalog(1_000_000, 2_000_000, 4_000_000))
	r, err := New(Config{Clocks: []Clock{{Name: "cpu", Frequency: 2_000_000}}}, WithValidator(v))
	require.NoError(t, err)
	assert.Same(t, v, r.Validator())

	report, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, uint64(1), v.Stats().Validations)
}

func TestRunner_CheckReadsClockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(boardTOML), 0o644))

	r, err := New(Config{ClockFile: path})
	require.NoError(t, err)

	report, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Len(t, report.Results, 3)

	require.NoError(t, os.WriteFile(path, []byte("[[clock]]\nname = \"cpu\"\nfrequency = 1234567\n"), 0o644))
	report, err = r.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, report.OK())

	require.NoError(t, os.Remove(path))
	_, err = r.Check(context.Background())
	assert.ErrorIs(t, err, ErrClockFile)
}

func TestRunner_CheckCanceled(t *testing.T) {
	r, err := New(Config{Clocks: []Clock{{Name: "rtc", Frequency: 32_768}}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Check(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_StartStop(t *testing.T) {
	handler := &recordingHandler{}
	var order []string
	first := &stubPlugin{name: "first", order: &order}
	second := &stubPlugin{name: "second", order: &order}

	r, err := New(Config{Clocks: []Clock{{Name: "rtc", Frequency: 32_768}}},
		WithEventHandler(handler),
		WithPlugin(first),
		WithPlugin(second),
	)
	require.NoError(t, err)

	require.NoError(t, r.Start(context.Background()))
	assert.ErrorIs(t, r.Start(context.Background()), ErrAlreadyRunning)

	require.Eventually(t, func() bool { return handler.reportCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateRunning, r.Status())

	report, err := first.cfg.Recheck(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 2, handler.reportCount())

	require.NoError(t, r.Stop())
	assert.Equal(t, StateStopped, r.Status())
	assert.ErrorIs(t, r.Stop(), ErrNotRunning)

	assert.Equal(t, []string{"init:first", "init:second", "shutdown:second", "shutdown:first"}, order)
}

func TestRunner_PluginInitFailure(t *testing.T) {
	var order []string
	good := &stubPlugin{name: "good", order: &order}
	bad := &stubPlugin{name: "bad", initErr: errors.New("boom"), order: &order}

	r, err := New(Config{Clocks: []Clock{{Name: "rtc", Frequency: 32_768}}},
		WithPlugin(good),
		WithPlugin(bad),
	)
	require.NoError(t, err)

	err = r.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateCrashed, r.Status())

	assert.Error(t, good.ctx.Err(), "run context should be canceled")
	assert.Equal(t, []string{"init:good", "init:bad", "shutdown:good"}, order)
}

func TestRunner_InitialCheckFailureCrashes(t *testing.T) {
	var order []string
	watcher := &stubPlugin{name: "watcher", order: &order}

	r, err := New(Config{ClockFile: filepath.Join(t.TempDir(), "missing.toml")}, WithPlugin(watcher))
	require.NoError(t, err)

	require.NoError(t, r.Start(context.Background()))
	require.Eventually(t, func() bool { return r.Status() == StateCrashed }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, watcher.ctx.Err(), context.Canceled)
	assert.Equal(t, []string{"init:watcher", "shutdown:watcher"}, order)
	assert.ErrorIs(t, r.Stop(), ErrNotRunning)
}

func TestRunner_RestartAfterCrash(t *testing.T) {
	dir := t.TempDir()
	clockFile := filepath.Join(dir, "board.toml")

	var order []string
	watcher := &stubPlugin{name: "watcher", order: &order}

	r, err := New(Config{ClockFile: clockFile}, WithPlugin(watcher))
	require.NoError(t, err)

	require.NoError(t, r.Start(context.Background()))
	require.Eventually(t, func() bool { return r.Status() == StateCrashed }, time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(clockFile, []byte("[[clock]]\nname = \"rtc\"\nfrequency = 32768\n"), 0o644))

	require.NoError(t, r.Start(context.Background()))
	require.Eventually(t, func() bool { return r.LastReport().OK() && len(r.LastReport().Results) == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, StateRunning, r.Status())

	require.NoError(t, r.Stop())
	assert.Equal(t, []string{"init:watcher", "shutdown:watcher", "init:watcher", "shutdown:watcher"}, order)
}

func TestReport_WriteTo(t *testing.T) {
	r, err := New(Config{Clocks: []Clock{
		{Name: "maincpu", Frequency: 14_318_181, Divisor: 4},
		{Name: "sound", Frequency: 14_318_000},
	}})
	require.NoError(t, err)

	report, err := r.Check(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := report.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "3579545 Hz")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "did you mean 14314000 or 14318181?")
}

func TestValidateModuleVersions(t *testing.T) {
	assert.NoError(t, validateModuleVersions())
}

func TestCheckModules(t *testing.T) {
	tests := []struct {
		name    string
		module  moduleVersion
		wantErr string
	}{
		{
			name:   "exact",
			module: moduleVersion{"log", "1.1.0", "1.1.0", "1.1.0"},
		},
		{
			name:   "newer compatible module",
			module: moduleVersion{"log", "1.4.2", "1.0.0", "1.1.0"},
		},
		{
			name:    "module older than required",
			module:  moduleVersion{"lifecycle", "1.0.0", "1.0.0", "2.0.0"},
			wantErr: "older than required",
		},
		{
			name:    "module dropped compatibility",
			module:  moduleVersion{"lifecycle", "3.0.0", "3.0.0", "2.0.0"},
			wantErr: "dropped compatibility",
		},
		{
			name:    "malformed version",
			module:  moduleVersion{"xtal", "one", "1.0.0", "1.0.0"},
			wantErr: "invalid version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkModules([]moduleVersion{tt.module})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, 0, compareVersions("1.0.0", "1.0.0"))
	assert.Equal(t, 1, compareVersions("1.10.0", "1.9.9"))
	assert.Equal(t, -1, compareVersions("0.9.0", "1.0.0"))
}
