// README: Ride offer aggregate published by drivers.
package ride

import (
	"time"

	"carpool/internal/types"
)

const (
	TierEconomy = "Economy"
	TierLuxury  = "Luxury"
)

type Vehicle struct {
	Name        string `json:"name"`
	PlateNumber string `json:"plate_number"`
	Color       string `json:"color"`
	Capacity    int    `json:"capacity"`
}

type Route struct {
	FromLabel string      `json:"from"`
	From      types.Point `json:"from_coord"`
	ToLabel   string      `json:"to"`
	To        types.Point `json:"to_coord"`
}

// Schedule fields are opaque strings; the engine never parses them.
type Schedule struct {
	Date      string `json:"date"`
	Departure string `json:"estimated_departure"`
	Arrival   string `json:"estimated_arrival"`
}

type Preferences struct {
	PetsAllowed    bool   `json:"pets_allowed"`
	SmokingAllowed bool   `json:"smoking_allowed"`
	Tier           string `json:"tier"`
	Notes          string `json:"notes"`
}

// Offer is immutable after publish except for Vehicle.Capacity, which
// only the booking module's accept transition may decrement.
type Offer struct {
	ID          types.ID    `json:"id"`
	DriverName  string      `json:"driver_name"`
	DriverPhone string      `json:"driver_phone"`
	Vehicle     Vehicle     `json:"vehicle"`
	Route       Route       `json:"route"`
	Schedule    Schedule    `json:"schedule"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"created_at"`
}
