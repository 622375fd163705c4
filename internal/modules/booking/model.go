// README: Booking aggregate and status state machine.
package booking

import (
	"time"

	"carpool/internal/modules/ride"
	"carpool/internal/types"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// AllowedTransitions represents the booking state flow as code.
// Accepted and rejected are terminal; a booking never re-enters
// pending.
var AllowedTransitions = map[Status][]Status{
	StatusPending: {StatusAccepted, StatusRejected},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

type RequestedRoute struct {
	StartLabel string `json:"start"`
	EndLabel   string `json:"end"`
}

type Booking struct {
	ID            types.ID         `json:"id"`
	RiderName     string           `json:"rider_name"`
	RiderPhone    string           `json:"rider_phone"`
	Route         RequestedRoute   `json:"requested_route"`
	NumPassengers int              `json:"num_passengers"`
	Preferences   ride.Preferences `json:"preferences"`
	Status        Status           `json:"status"`
	RideOfferID   *types.ID        `json:"ride_offer_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// RideSummary is the driver/vehicle slice of an offer shown in booking
// views.
type RideSummary struct {
	DriverName  string `json:"driver_name"`
	VehicleName string `json:"vehicle_name"`
	FromLabel   string `json:"from"`
	ToLabel     string `json:"to"`
}

// DriverRequest is a booking as seen by the driver it references.
type DriverRequest struct {
	Booking Booking     `json:"booking"`
	Ride    RideSummary `json:"carpool"`
}

// RiderBooking is a booking as seen by the rider who created it; Ride
// is nil until a ride offer is associated.
type RiderBooking struct {
	Booking Booking      `json:"booking"`
	Ride    *RideSummary `json:"driver,omitempty"`
}

func summarize(o *ride.Offer) RideSummary {
	return RideSummary{
		DriverName:  o.DriverName,
		VehicleName: o.Vehicle.Name,
		FromLabel:   o.Route.FromLabel,
		ToLabel:     o.Route.ToLabel,
	}
}
