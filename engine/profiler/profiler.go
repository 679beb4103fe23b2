package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, draw submission counts, and heap statistics,
// logging a summary line at a fixed interval.
type Profiler struct {
	frameCount     int
	drawCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler that logs once per interval.
// An interval of zero or less defaults to 1 second.
//
// Parameters:
//   - interval: how often to emit a stats line
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// AddDraws records draw submissions for the current frame. Call after
// rendering each frame with the number of draw calls issued.
//
// Parameters:
//   - n: draw calls issued this frame
func (p *Profiler) AddDraws(n int) {
	p.drawCount += n
}

// Tick should be called once per frame. When the update interval has
// elapsed it logs FPS, average draws per frame, heap usage, allocation
// rate, and GC pause stats, then resets the window.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	drawsPerFrame := 0.0
	if p.frameCount > 0 {
		drawsPerFrame = float64(p.drawCount) / float64(p.frameCount)
	}

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	if gcCount > p.lastGCCount {
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Draws/frame: %.1f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max pause: %d µs)",
		fps, drawsPerFrame, heapMB, allocRateMB, gcCount, maxPauseUs)

	p.frameCount = 0
	p.drawCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
