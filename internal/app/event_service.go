package app

import (
	"context"

	"github.com/drishti-demo/venue-sim/internal/clock"
	"github.com/drishti-demo/venue-sim/internal/domain"
	"github.com/drishti-demo/venue-sim/internal/state"
)

// EventService validates and applies externally triggered alerts.
type EventService struct {
	store *state.Store
	clock clock.Clock
}

func NewEventService(store *state.Store, clk clock.Clock) *EventService {
	return &EventService{store: store, clock: clk}
}

type TriggerEventInput struct {
	Type domain.AlertType
	Zone string
}

// TriggerEventResult reports what the trigger changed, for logging and
// handler messages.
type TriggerEventResult struct {
	NewAlert          bool
	EvacuationStarted bool
	GatesOpened       []string
}

// TriggerEvent adds the alert to the zone and applies its alert-specific
// immediate effect. Re-triggering an active alert only refreshes its
// timestamp.
func (s *EventService) TriggerEvent(ctx context.Context, in TriggerEventInput) (TriggerEventResult, error) {
	if !domain.ValidAlertType(in.Type) {
		return TriggerEventResult{}, domain.ErrInvalidAlertType
	}

	now := s.clock.Now()
	var res TriggerEventResult

	err := s.store.With(func(v *state.View) error {
		z, ok := v.Zone(in.Zone)
		if !ok {
			return domain.ErrZoneNotFound
		}

		res.NewAlert = v.TriggerAlert(z, in.Type, now)

		switch in.Type {
		case domain.AlertFire:
			res.GatesOpened = openExitGates(v, z.ID)
			res.EvacuationStarted = startEvacuation(z)
		case domain.AlertStampede:
			res.EvacuationStarted = startEvacuation(z)
		case domain.AlertOvercrowding:
			// Cap effective capacity; occupancy above it classifies as
			// critical until the alert resolves. No immediate people change.
			z.CapacityCap = overcrowdingCap(z)
		case domain.AlertMedicalEmergency, domain.AlertSecurityThreat:
			// Alert only.
		}
		return nil
	})
	if err != nil {
		return TriggerEventResult{}, err
	}
	return res, nil
}
