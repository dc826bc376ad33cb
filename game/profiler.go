package game

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	errCaptureCooldown = errors.New("capture on cooldown")
	errCaptureBusy     = errors.New("already profiling")
)

// Profiler captures a CPU profile and an execution trace when the game
// slows down
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	log             *zap.Logger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, log *zap.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		log:             log,
	}, nil
}

// CaptureProfile starts a background capture unless one ran recently
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastCaptureTime) < p.captureCooldown {
		return errCaptureCooldown
	}
	if p.isProfiling {
		return errCaptureBusy
	}
	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	baseName := fmt.Sprintf("tps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.capture(baseName+".cpu.prof", pprof.StartCPUProfile, pprof.StopCPUProfile); err != nil {
				p.log.Warn("cpu profile failed", zap.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.capture(baseName+".trace", trace.Start, trace.Stop); err != nil {
				p.log.Warn("trace failed", zap.Error(err))
			}
		}()
		wg.Wait()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		p.log.Info("profile captured",
			zap.String("dir", p.profilesDir),
			zap.String("name", baseName),
			zap.Uint64("heap_alloc_kb", m.HeapAlloc/1024),
			zap.Uint32("num_gc", m.NumGC),
		)
	}()
	return nil
}

func (p *Profiler) capture(name string, start func(w io.Writer) error, stop func()) error {
	path := filepath.Join(p.profilesDir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := start(file); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	time.Sleep(p.captureDuration)
	stop()
	return nil
}

// IsProfiling returns whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
