package app

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/drishti-demo/venue-sim/internal/clock"
	"github.com/drishti-demo/venue-sim/internal/config"
	"github.com/drishti-demo/venue-sim/internal/domain"
	"github.com/drishti-demo/venue-sim/internal/state"
)

// stepClock is a mutable clock for exercising time-based policies tick by
// tick.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		TickInterval:          500 * time.Millisecond,
		EvacuationDecay:       0.10,
		CrowdControlDecay:     0.05,
		CrowdControlCalmTicks: 3,
	}
}

func newTestEngine(store *state.Store, cfg config.EngineConfig, clk clock.Clock) *Engine {
	return NewEngine(store, cfg, clk, log.New(io.Discard, "", 0))
}

func TestEngine_EvacuationDepletesZone(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	now := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	events := NewEventService(store, clock.NewFixed(now))
	engine := newTestEngine(store, testEngineConfig(), clock.NewFixed(now))

	if _, err := events.TriggerEvent(context.Background(), TriggerEventInput{
		Type: domain.AlertStampede,
		Zone: "hall_1_lower",
	}); err != nil {
		t.Fatalf("trigger stampede: %v", err)
	}

	prev := 4900
	const maxTicks = 200
	emptied := -1
	for i := 0; i < maxTicks; i++ {
		engine.Tick()
		zs := zoneSnapshot(t, store, "hall_1_lower")

		if zs.NumPeople > prev {
			t.Fatalf("tick %d: occupancy increased %d -> %d", i, prev, zs.NumPeople)
		}
		if zs.NumPeople < 0 {
			t.Fatalf("tick %d: occupancy went negative: %d", i, zs.NumPeople)
		}
		want := zs.AreaSqm / float64(max(zs.NumPeople, 1))
		if zs.DensitySqmPerPerson != want {
			t.Fatalf("tick %d: stale density %v for %d people", i, zs.DensitySqmPerPerson, zs.NumPeople)
		}
		prev = zs.NumPeople
		if zs.NumPeople == 0 {
			emptied = i
			break
		}
	}
	if emptied < 0 {
		t.Fatalf("zone not emptied within %d ticks", maxTicks)
	}

	zs := zoneSnapshot(t, store, "hall_1_lower")
	if zs.EvacuationActive {
		t.Fatalf("expected machine back to idle after emptying")
	}
	if hasAlert(zs, domain.AlertStampede) {
		t.Fatalf("expected Stampede cleared once zone emptied")
	}
	if zs.BottleneckRisk != domain.RiskLow {
		t.Fatalf("expected low risk for emptied zone, got %s", zs.BottleneckRisk)
	}
}

func TestEngine_FireAlertClearsWhenZoneEmpties(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	now := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	events := NewEventService(store, clock.NewFixed(now))
	engine := newTestEngine(store, testEngineConfig(), clock.NewFixed(now))

	// Shrink the zone to 100 people so depletion is quick.
	_ = store.With(func(v *state.View) error {
		z, _ := v.Zone("hall_2")
		z.NumPeople = 100
		return nil
	})

	if _, err := events.TriggerEvent(context.Background(), TriggerEventInput{
		Type: domain.AlertFire,
		Zone: "hall_2",
	}); err != nil {
		t.Fatalf("trigger fire: %v", err)
	}

	for i := 0; i < 100; i++ {
		engine.Tick()
		if zoneSnapshot(t, store, "hall_2").NumPeople == 0 {
			break
		}
	}

	zs := zoneSnapshot(t, store, "hall_2")
	if zs.NumPeople != 0 {
		t.Fatalf("expected emptied zone, got %d people", zs.NumPeople)
	}
	if hasAlert(zs, domain.AlertFire) {
		t.Fatalf("expected Fire absent after evacuation, got %v", zs.ActiveAlerts)
	}
}

func TestEngine_EvacuationReforcesExitGates(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	now := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	actions := NewActionService(store, clock.NewFixed(now))
	engine := newTestEngine(store, testEngineConfig(), clock.NewFixed(now))

	if err := actions.Evacuate(context.Background(), "hall_1_lower"); err != nil {
		t.Fatalf("evacuate: %v", err)
	}
	if _, err := actions.ToggleGate(context.Background(), "e1_fire_exit", domain.GateClosed); err != nil {
		t.Fatalf("manual close: %v", err)
	}

	engine.Tick()
	if got := store.Snapshot().Gates["e1_fire_exit"].Status; got != domain.GateOpen {
		t.Fatalf("expected tick to re-force exit open, got %s", got)
	}
}

func TestEngine_CrowdControlSettlesAtLowDensity(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	now := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	actions := NewActionService(store, clock.NewFixed(now))
	engine := newTestEngine(store, testEngineConfig(), clock.NewFixed(now))

	// hall_1_upper: 3000 sqm, 2100 people. Low-density target is 1200.
	if err := actions.ActivateCrowdControl(context.Background(), "hall_1_upper"); err != nil {
		t.Fatalf("activate: %v", err)
	}

	const target = 1200
	const maxTicks = 500
	done := false
	for i := 0; i < maxTicks; i++ {
		engine.Tick()
		zs := zoneSnapshot(t, store, "hall_1_upper")
		if zs.NumPeople < target {
			t.Fatalf("tick %d: crowd control went below target: %d", i, zs.NumPeople)
		}
		if !zs.CrowdControlActive {
			done = true
			break
		}
	}
	if !done {
		t.Fatalf("crowd control did not complete within %d ticks", maxTicks)
	}

	zs := zoneSnapshot(t, store, "hall_1_upper")
	if zs.NumPeople == 0 {
		t.Fatalf("crowd control must never empty a zone")
	}
	if hasAlert(zs, domain.AlertOvercrowding) {
		t.Fatalf("expected Overcrowding cleared on completion, got %v", zs.ActiveAlerts)
	}
	if zs.BottleneckRisk != domain.RiskLow {
		t.Fatalf("expected low risk after crowd control, got %s", zs.BottleneckRisk)
	}
}

func TestEngine_CrowdControlAlreadyCalmZone(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	now := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	actions := NewActionService(store, clock.NewFixed(now))
	cfg := testEngineConfig()
	engine := newTestEngine(store, cfg, clock.NewFixed(now))

	// food_court is already at low density (3.33 sqm/person).
	if err := actions.ActivateCrowdControl(context.Background(), "food_court"); err != nil {
		t.Fatalf("activate: %v", err)
	}

	for i := 0; i < cfg.CrowdControlCalmTicks; i++ {
		if !zoneSnapshot(t, store, "food_court").CrowdControlActive {
			t.Fatalf("deactivated after only %d ticks", i)
		}
		engine.Tick()
	}

	zs := zoneSnapshot(t, store, "food_court")
	if zs.CrowdControlActive {
		t.Fatalf("expected deactivation after sustained calm run")
	}
	if zs.NumPeople != 600 {
		t.Fatalf("expected occupancy untouched, got %d", zs.NumPeople)
	}
}

func TestEngine_CrowdDrift(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)

	t.Run("disabled by default", func(t *testing.T) {
		store := newTestStore(t)
		engine := newTestEngine(store, testEngineConfig(), clock.NewFixed(now))

		before := store.Snapshot()
		engine.Tick()
		after := store.Snapshot()
		for id := range before.Zones {
			if before.Zones[id].NumPeople != after.Zones[id].NumPeople {
				t.Fatalf("zone %s drifted with drift disabled", id)
			}
		}
	})

	t.Run("inbound growth halved under crowd control", func(t *testing.T) {
		store := newTestStore(t)
		cfg := testEngineConfig()
		cfg.CrowdDrift = config.CrowdDrift{Enabled: true, MaxStep: 20}
		engine := newTestEngine(store, cfg, clock.NewFixed(now))
		engine.intN = func(n int) int { return n - 1 } // always +MaxStep

		_ = store.With(func(v *state.View) error {
			z, _ := v.Zone("food_court")
			z.CrowdControl.Active = true
			return nil
		})

		engine.Tick()
		snap := store.Snapshot()
		if got := snap.Zones["hall_2"].NumPeople; got != 2820 {
			t.Fatalf("expected uncontrolled zone +20, got %d people", got)
		}
		if got := snap.Zones["food_court"].NumPeople; got != 610 {
			t.Fatalf("expected throttled zone +10, got %d people", got)
		}
	})

	t.Run("evacuating zones never drift", func(t *testing.T) {
		store := newTestStore(t)
		cfg := testEngineConfig()
		cfg.CrowdDrift = config.CrowdDrift{Enabled: true, MaxStep: 1000}
		engine := newTestEngine(store, cfg, clock.NewFixed(now))
		engine.intN = func(n int) int { return n - 1 } // always +MaxStep

		actions := NewActionService(store, clock.NewFixed(now))
		if err := actions.Evacuate(context.Background(), "hall_1_lower"); err != nil {
			t.Fatalf("evacuate: %v", err)
		}

		before := zoneSnapshot(t, store, "hall_1_lower").NumPeople
		engine.Tick()
		after := zoneSnapshot(t, store, "hall_1_lower").NumPeople
		if after > before {
			t.Fatalf("evacuating zone grew %d -> %d", before, after)
		}
	})
}

func TestEngine_DispatchAutoReturn(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	clk := &stepClock{now: time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)}
	cfg := testEngineConfig()
	cfg.DispatchReturnAfter = time.Minute

	actions := NewActionService(store, clk)
	engine := newTestEngine(store, cfg, clk)

	if _, err := actions.DispatchUnit(context.Background(), "med_01", "hall_2"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	engine.Tick()
	if got := store.Snapshot().Personnel["med_01"].Status; got != domain.PersonnelDispatched {
		t.Fatalf("expected unit still dispatched before deadline, got %s", got)
	}

	clk.now = clk.now.Add(2 * time.Minute)
	engine.Tick()
	snap := store.Snapshot()
	if got := snap.Personnel["med_01"].Status; got != domain.PersonnelAvailable {
		t.Fatalf("expected unit returned after deadline, got %s", got)
	}
	// sec_01 was dispatched in the initial roster with no timestamp; the
	// policy leaves it alone.
	if got := snap.Personnel["sec_01"].Status; got != domain.PersonnelDispatched {
		t.Fatalf("expected roster-dispatched unit untouched, got %s", got)
	}
}

func TestEngine_TickIdleVenueIsStable(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	engine := newTestEngine(store, testEngineConfig(), clock.NewSystem())

	before := store.Snapshot()
	for i := 0; i < 10; i++ {
		engine.Tick()
	}
	after := store.Snapshot()

	for id, z := range after.Zones {
		if z.NumPeople != before.Zones[id].NumPeople {
			t.Fatalf("idle tick changed %s occupancy", id)
		}
	}
	for id, g := range after.Gates {
		if g.Status != before.Gates[id].Status {
			t.Fatalf("idle tick changed gate %s", id)
		}
	}
}

func TestEngine_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	cfg := testEngineConfig()
	cfg.TickInterval = time.Millisecond
	engine := newTestEngine(store, cfg, clock.NewSystem())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		engine.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("engine did not stop on context cancel")
	}
}
