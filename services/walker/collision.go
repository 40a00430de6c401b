package walker

import (
	"context"
	"math"
	"sync"

	"go.uber.org/atomic"

	"go.viam.com/walker/lidar"
	"go.viam.com/walker/logging"
)

// Mode names the behavior the walker is in.
type Mode string

// The two modes of the walker. The walker starts out exploring.
const (
	ModeExploring = Mode("EXPLORING")
	ModeAvoiding  = Mode("AVOIDING")
)

// CollisionState is the latest verdict about the space in front of the robot.
type CollisionState struct {
	IsCollision bool
	// Distance is the smallest finite range in the front window of the last scan, or +Inf if the
	// window held no finite reading.
	Distance float64
}

// Mode returns the mode this state puts the walker in.
func (cs CollisionState) Mode() Mode {
	if cs.IsCollision {
		return ModeAvoiding
	}
	return ModeExploring
}

func initialCollisionState() *CollisionState {
	return &CollisionState{Distance: math.Inf(1)}
}

// StateReader gives access to the latest CollisionState.
type StateReader interface {
	State() CollisionState
}

// ScanMonitor turns each incoming scan into a CollisionState. The state is swapped atomically so
// readers never observe a partially written value.
type ScanMonitor struct {
	minDistance float64
	windowRays  int
	logger      logging.Logger

	mu    sync.Mutex
	state atomic.Pointer[CollisionState]

	scans       atomic.Uint64
	transitions atomic.Uint64
}

// NewScanMonitor returns a monitor that flags a collision when any finite range among the first
// and last windowRays rays is below minDistance.
func NewScanMonitor(minDistance float64, windowRays int, logger logging.Logger) *ScanMonitor {
	sm := &ScanMonitor{
		minDistance: minDistance,
		windowRays:  windowRays,
		logger:      logger,
	}
	sm.state.Store(initialCollisionState())
	return sm
}

// OnScan evaluates the scan and replaces the current state. It has the shape of a lidar.Handler.
func (sm *ScanMonitor) OnScan(ctx context.Context, scan *lidar.Scan) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	closest := scan.FrontMeasurements(sm.windowRays).Closest()
	dist := distanceOf(closest)
	next := &CollisionState{
		IsCollision: dist < sm.minDistance,
		Distance:    dist,
	}
	prev := sm.state.Swap(next)
	sm.scans.Inc()

	if prev.IsCollision == next.IsCollision {
		sm.logger.CDebugw(ctx, "scan", "seq", scanSeq(scan), "front_min", dist, "mode", next.Mode())
		return
	}
	sm.transitions.Inc()
	if next.IsCollision {
		// a collision implies a finite closest return
		sm.logger.Infow("obstacle ahead, avoiding", "distance", dist, "min_distance", sm.minDistance,
			"bearing_deg", closest.AngleDeg(), "x", closest.Point().X, "y", closest.Point().Y)
	} else {
		sm.logger.Infow("path clear, exploring", "distance", dist)
	}
}

// State returns the latest state.
func (sm *ScanMonitor) State() CollisionState {
	return *sm.state.Load()
}

// ScansProcessed returns how many scans have been evaluated.
func (sm *ScanMonitor) ScansProcessed() uint64 {
	return sm.scans.Load()
}

// Transitions returns how many times the mode has flipped.
func (sm *ScanMonitor) Transitions() uint64 {
	return sm.transitions.Load()
}

// FrontMinimum returns the smallest finite range among the first k and last k rays of the scan.
// When the two ends overlap the whole scan is used. It returns +Inf when no ray in the window has
// a finite range.
func FrontMinimum(scan *lidar.Scan, k int) float64 {
	return distanceOf(scan.FrontMeasurements(k).Closest())
}

func distanceOf(m *lidar.Measurement) float64 {
	if m == nil {
		return math.Inf(1)
	}
	return m.Distance()
}

func scanSeq(scan *lidar.Scan) uint32 {
	if scan == nil {
		return 0
	}
	return scan.Seq
}
