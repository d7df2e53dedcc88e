package app

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/drishti-demo/venue-sim/internal/clock"
	"github.com/drishti-demo/venue-sim/internal/config"
	"github.com/drishti-demo/venue-sim/internal/domain"
	"github.com/drishti-demo/venue-sim/internal/state"
)

// Engine is the background clock driving the per-zone evacuation and
// crowd-control state machines. Every tick mutates the store inside a single
// critical section, interleaving with HTTP-driven mutations in lock order.
type Engine struct {
	store  *state.Store
	cfg    config.EngineConfig
	clock  clock.Clock
	logger *log.Logger
	// intN is swappable for deterministic drift tests.
	intN func(n int) int
}

func NewEngine(store *state.Store, cfg config.EngineConfig, clk clock.Clock, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		store:  store,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
		intN:   rand.IntN,
	}
}

// Run drives Tick on a fixed interval until ctx is cancelled. Call in a
// goroutine.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	e.logger.Printf("protocol engine started, tick interval %s", e.cfg.TickInterval)
	for {
		select {
		case <-ctx.Done():
			e.logger.Printf("protocol engine stopped")
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Tick advances every zone's machines by one step. Pure in-memory
// arithmetic; it has no error path, only invariant clamping.
func (e *Engine) Tick() {
	now := e.clock.Now()
	_ = e.store.With(func(v *state.View) error {
		v.EachZone(func(z *domain.Zone) {
			e.stepEvacuation(v, z)
			e.stepCrowdControl(v, z, now)
			e.stepDrift(v, z)
			v.ResolveEmptiedZone(z)
		})
		e.returnDispatchedUnits(v, now)
		return nil
	})
}

// stepEvacuation depletes an evacuating zone by a fixed fraction of its
// current count, at least one person per tick so depletion terminates. Exit
// gates are re-forced open every tick; a manual close lasts at most one tick
// while the protocol runs.
func (e *Engine) stepEvacuation(v *state.View, z *domain.Zone) {
	if !z.Evacuating {
		return
	}

	openExitGates(v, z.ID)

	if z.NumPeople > 0 {
		reduction := int(float64(z.NumPeople) * e.cfg.EvacuationDecay)
		if reduction < 1 {
			reduction = 1
		}
		z.NumPeople -= reduction
		if z.NumPeople < 0 {
			z.NumPeople = 0
		}
	}
	if z.NumPeople > 0 {
		return
	}

	// Empty: resolve the emptied-zone alerts and return to Idle so a fresh
	// trigger can evacuate again.
	z.Evacuating = false
	cleared := v.ResolveEmptiedZone(z)
	e.logger.Printf("evacuation of %s complete, cleared alerts %v", z.ID, cleared)
}

// stepCrowdControl nudges an actively controlled zone toward the occupancy
// where density reaches the low threshold, never below it, and deactivates
// after a sustained run of calm ticks.
func (e *Engine) stepCrowdControl(v *state.View, z *domain.Zone, now time.Time) {
	if !z.CrowdControl.Active || z.Evacuating {
		return
	}

	openSecondaryGates(v, z.ID)
	if !z.HasAlert(domain.AlertOvercrowding) {
		v.TriggerAlert(z, domain.AlertOvercrowding, now)
	}

	target := int(z.AreaSqm / domain.DensityLowThreshold)
	if z.NumPeople > target {
		reduction := int(float64(z.NumPeople) * e.cfg.CrowdControlDecay)
		if reduction < 1 {
			reduction = 1
		}
		z.NumPeople -= reduction
		if z.NumPeople < target {
			z.NumPeople = target
		}
	}

	if z.Density() >= domain.DensityLowThreshold {
		z.CrowdControl.CalmTicks++
	} else {
		z.CrowdControl.CalmTicks = 0
	}
	if z.CrowdControl.CalmTicks < e.cfg.CrowdControlCalmTicks {
		return
	}

	z.CrowdControl = domain.CrowdControlState{}
	v.ClearAlert(z, domain.AlertOvercrowding)
	v.ClearAlert(z, domain.AlertStampede)
	e.logger.Printf("crowd control in %s complete at %d people", z.ID, z.NumPeople)
}

// stepDrift applies the optional ambient occupancy drift. Evacuating and
// empty zones are left alone; inbound growth is halved (throttled, not
// blocked) while crowd control is active.
func (e *Engine) stepDrift(v *state.View, z *domain.Zone) {
	if !e.cfg.CrowdDrift.Enabled || e.cfg.CrowdDrift.MaxStep <= 0 {
		return
	}
	if z.Evacuating || z.NumPeople == 0 {
		return
	}

	step := e.cfg.CrowdDrift.MaxStep
	delta := e.intN(2*step+1) - step
	if delta > 0 && z.CrowdControl.Active {
		delta /= 2
	}
	z.NumPeople += delta
	if z.NumPeople < 0 {
		z.NumPeople = 0
	}
}

// returnDispatchedUnits applies the optional auto-return policy. Units
// dispatched before the engine started (no timestamp) stay out until
// redeployed manually.
func (e *Engine) returnDispatchedUnits(v *state.View, now time.Time) {
	if e.cfg.DispatchReturnAfter <= 0 {
		return
	}
	v.EachPersonnel(func(p *domain.Personnel) {
		if p.Status != domain.PersonnelDispatched || p.DispatchedAt.IsZero() {
			return
		}
		if now.Sub(p.DispatchedAt) < e.cfg.DispatchReturnAfter {
			return
		}
		p.Status = domain.PersonnelAvailable
		p.DispatchedAt = time.Time{}
		e.logger.Printf("unit %s returned to available", p.ID)
	})
}
