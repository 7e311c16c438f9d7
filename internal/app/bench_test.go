package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/volbench/internal/adapters/mem"
	"github.com/bft-labs/volbench/internal/domain"
	"github.com/bft-labs/volbench/internal/ports"
	"github.com/bft-labs/volbench/pkg/log"
)

type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newClock() *stepClock {
	return &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: 500 * time.Millisecond}
}

// recordingLogger keeps messages for assertions.
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *recordingLogger) Debug(msg string, fields ...log.Field) { l.add(msg) }
func (l *recordingLogger) Info(msg string, fields ...log.Field)  { l.add(msg) }
func (l *recordingLogger) Warn(msg string, fields ...log.Field)  { l.add(msg) }
func (l *recordingLogger) Error(msg string, fields ...log.Field) { l.add(msg) }

func (l *recordingLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

type memReports struct {
	saved []domain.Report
	err   error
}

func (r *memReports) Save(ctx context.Context, report domain.Report) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, report)
	return nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Volume = "SD:"
	return cfg
}

func newTestBench(t *testing.T, cfg Config, vol *mem.Volume, reports *memReports, logger log.Logger) *Bench {
	t.Helper()
	var repo ports.ReportRepository
	if reports != nil {
		repo = reports
	}
	b, err := NewBench(cfg, mem.NewMounter(vol), newClock(), repo, logger, nil)
	if err != nil {
		t.Fatalf("NewBench: %v", err)
	}
	return b
}

func TestBench_Run(t *testing.T) {
	vol := mem.NewVolume("SD:")
	vol.Put(DefaultInput, []byte("abc"))
	logger := &recordingLogger{}
	reports := &memReports{}

	report, err := newTestBench(t, testConfig(), vol, reports, logger).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	const abc = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if report.Digest.Hex() != abc {
		t.Errorf("digest = %s, want %s", report.Digest.Hex(), abc)
	}
	if report.Size != 3 {
		t.Errorf("size = %d, want 3", report.Size)
	}
	if report.Read.Seconds() != 0.5 || report.Write.Seconds() != 0.5 {
		t.Errorf("read/write seconds = %v/%v, want 0.5/0.5", report.Read.Seconds(), report.Write.Seconds())
	}
	if report.Verified {
		t.Error("Verified = true with verify disabled")
	}

	out, ok := vol.Get(DefaultOutput)
	if !ok || string(out) != "abc" {
		t.Errorf("output = %q, %v; want abc", out, ok)
	}
	if len(reports.saved) != 1 || reports.saved[0].Digest != report.Digest {
		t.Errorf("saved reports = %+v", reports.saved)
	}
	for _, want := range []string{"read 0MB in 0.50 seconds", "SHA256 sum for /testfile.bin: " + abc, "wrote 0MB in 0.50 seconds"} {
		if !logger.contains(want) {
			t.Errorf("log missing %q; got %v", want, logger.msgs)
		}
	}
}

func TestBench_RunEmptyFile(t *testing.T) {
	vol := mem.NewVolume("SD:")
	vol.Put(DefaultInput, nil)
	cfg := testConfig()
	cfg.Verify = true

	report, err := newTestBench(t, cfg, vol, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if report.Digest.Hex() != empty {
		t.Errorf("digest = %s, want %s", report.Digest.Hex(), empty)
	}
	out, ok := vol.Get(DefaultOutput)
	if !ok || len(out) != 0 {
		t.Errorf("output = %d bytes, %v; want empty file", len(out), ok)
	}
	if !report.Verified {
		t.Error("Verified = false")
	}
}

func TestBench_RoundTripBinary(t *testing.T) {
	data := make([]byte, 3<<20+17)
	for i := range data {
		data[i] = byte(i ^ (i >> 8))
	}
	vol := mem.NewVolume("SD:")
	vol.Put(DefaultInput, data)
	cfg := testConfig()
	cfg.Algorithm = "blake3"
	cfg.Verify = true
	cfg.Sync = true
	logger := &recordingLogger{}

	report, err := newTestBench(t, cfg, vol, nil, logger).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out, _ := vol.Get(DefaultOutput)
	if !bytes.Equal(out, data) {
		t.Error("output differs from input")
	}
	if report.Megabytes() != 3 {
		t.Errorf("Megabytes() = %d, want 3", report.Megabytes())
	}
	if !logger.contains("read 3MB") || !logger.contains("BLAKE3 sum") {
		t.Errorf("unexpected log lines: %v", logger.msgs)
	}
	// read, write, verify read
	if vol.Opens() != 3 {
		t.Errorf("Opens() = %d, want 3", vol.Opens())
	}
}

func TestBench_Faults(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		setup     func(v *mem.Volume)
		cfg       func(c *Config)
		wantKind  error
		wantPhase domain.Phase
	}{
		{
			name:      "missing input",
			setup:     func(v *mem.Volume) {},
			wantKind:  domain.ErrNotFound,
			wantPhase: domain.PhaseOpen,
		},
		{
			name: "short read",
			setup: func(v *mem.Volume) {
				v.Put(DefaultInput, make([]byte, 100))
				v.InjectFault(DefaultInput, mem.Fault{ShortRead: 10})
			},
			wantKind:  domain.ErrSizeMismatch,
			wantPhase: domain.PhaseRead,
		},
		{
			name: "buffer too large",
			setup: func(v *mem.Volume) {
				v.Put(DefaultInput, make([]byte, 100))
			},
			cfg:       func(c *Config) { c.MaxBufferBytes = 50 },
			wantKind:  domain.ErrAllocation,
			wantPhase: domain.PhaseAllocate,
		},
		{
			name: "write error",
			setup: func(v *mem.Volume) {
				v.Put(DefaultInput, []byte("abc"))
				v.InjectFault(DefaultOutput, mem.Fault{WriteErr: boom})
			},
			wantKind:  domain.ErrIO,
			wantPhase: domain.PhaseWrite,
		},
		{
			name: "short write",
			setup: func(v *mem.Volume) {
				v.Put(DefaultInput, []byte("abcdef"))
				v.InjectFault(DefaultOutput, mem.Fault{ShortWrite: 2})
			},
			wantKind:  domain.ErrSizeMismatch,
			wantPhase: domain.PhaseWrite,
		},
		{
			name: "unexpected digest",
			setup: func(v *mem.Volume) {
				v.Put(DefaultInput, []byte("abd"))
			},
			cfg: func(c *Config) {
				c.ExpectDigest = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
			},
			wantKind:  domain.ErrDigestMismatch,
			wantPhase: domain.PhaseDigest,
		},
		{
			name: "corrupted output",
			setup: func(v *mem.Volume) {
				v.Put(DefaultInput, []byte("abc"))
				v.InjectFault(DefaultOutput, mem.Fault{CorruptWrite: true})
			},
			cfg:       func(c *Config) { c.Verify = true },
			wantKind:  domain.ErrDigestMismatch,
			wantPhase: domain.PhaseVerify,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vol := mem.NewVolume("SD:")
			tt.setup(vol)
			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			reports := &memReports{}

			_, err := newTestBench(t, cfg, vol, reports, nil).Run(context.Background())
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantKind)
			}
			var f *domain.Fault
			if !errors.As(err, &f) {
				t.Fatalf("error %T does not wrap *domain.Fault", err)
			}
			if f.Phase != tt.wantPhase {
				t.Errorf("phase = %s, want %s", f.Phase, tt.wantPhase)
			}
			if vol.Busy() {
				t.Error("file handle left open")
			}
			if len(reports.saved) != 0 {
				t.Error("report saved for a failed run")
			}
		})
	}
}

func TestBench_MountFault(t *testing.T) {
	cfg := testConfig()
	cfg.Volume = "USB:"
	b, err := NewBench(cfg, mem.NewMounter(mem.NewVolume("SD:")), newClock(), nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = b.Run(context.Background())
	if !errors.Is(err, domain.ErrMount) {
		t.Fatalf("Run() error = %v, want ErrMount", err)
	}
	var f *domain.Fault
	if !errors.As(err, &f) || f.Phase != domain.PhaseMount || f.Path != "USB:" {
		t.Errorf("fault = %v, want mount USB:", err)
	}
}

func TestBench_ReportSaveError(t *testing.T) {
	vol := mem.NewVolume("SD:")
	vol.Put(DefaultInput, []byte("abc"))
	reports := &memReports{err: errors.New("disk full")}

	report, err := newTestBench(t, testConfig(), vol, reports, nil).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "save report") {
		t.Fatalf("Run() error = %v, want save report error", err)
	}
	if report.Digest.IsZero() {
		t.Error("report not filled in before save failed")
	}
}

func TestNewBench_NoMounter(t *testing.T) {
	if _, err := NewBench(testConfig(), nil, nil, nil, nil, nil); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("NewBench() error = %v, want ErrInvalidConfig", err)
	}
}

func TestBench_EventsAndState(t *testing.T) {
	vol := mem.NewVolume("SD:")
	vol.Put(DefaultInput, []byte("abc"))
	cfg := testConfig()
	cfg.Verify = true
	em := &mockEmitter{}

	b, err := NewBench(cfg, mem.NewMounter(vol), newClock(), nil, nil, em)
	if err != nil {
		t.Fatal(err)
	}
	if b.State() != StateIdle {
		t.Fatalf("State() = %v, want Idle", b.State())
	}
	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if b.State() != StateCompleted {
		t.Errorf("State() = %v, want Completed", b.State())
	}

	want := []transferEvent{
		{domain.PhaseRead, DefaultInput, 3},
		{domain.PhaseWrite, DefaultOutput, 3},
		{domain.PhaseVerify, DefaultOutput, 3},
	}
	if len(em.transfers) != len(want) {
		t.Fatalf("got %d transfer events, want %d", len(em.transfers), len(want))
	}
	for i := range want {
		if em.transfers[i] != want[i] {
			t.Errorf("transfer[%d] = %+v, want %+v", i, em.transfers[i], want[i])
		}
	}

	if _, err := b.Run(context.Background()); !errors.Is(err, domain.ErrAlreadyRun) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRun", err)
	}
}

func TestBench_FailedState(t *testing.T) {
	em := &mockEmitter{}
	b, err := NewBench(testConfig(), mem.NewMounter(mem.NewVolume("SD:")), newClock(), nil, nil, em)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Run(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Run() error = %v, want ErrNotFound", err)
	}
	if b.State() != StateFailed {
		t.Errorf("State() = %v, want Failed", b.State())
	}
	last := em.states[len(em.states)-1]
	if last.current != StateFailed || !strings.Contains(last.reason, DefaultInput) {
		t.Errorf("last state event = %+v", last)
	}
}
