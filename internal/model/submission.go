// Package model defines the core domain models used throughout the application.
package model

import "encoding/json"

// VehicleMode distinguishes the two supported vehicle usage forms.
type VehicleMode string

// Vehicle mode labels as they arrive from the form.
const (
	VehicleModeRental  VehicleMode = "レンタカー"
	VehicleModePrivate VehicleMode = "自家用車"
)

// SubCost is a single toll/fuel/parking entry attached to a vehicle usage.
type SubCost struct {
	Amount string `json:"amount"`
}

// PublicTransport is one public-transport leg of a trip.
type PublicTransport struct {
	Date            string `json:"date"`
	TransportMethod string `json:"transportMethod"`
	Departure       string `json:"departure"`
	Arrival         string `json:"arrival"`
	OneWayFare      string `json:"oneWayFare"`
}

// VehicleUsage is one rental-car or private-car leg of a trip.
// RentalFee is populated in rental mode, Distance in private mode;
// an unrecognized mode leaves both empty.
type VehicleUsage struct {
	Date            string    `json:"date"`
	TransportMethod string    `json:"transportMethod"`
	Departure       string    `json:"departure"`
	Arrival         string    `json:"arrival"`
	RentalFee       string    `json:"rentalFee,omitempty"`
	Distance        string    `json:"distance,omitempty"`
	Tolls           []SubCost `json:"tolls,omitempty"`
	Gasoline        []SubCost `json:"gasoline,omitempty"`
	Parking         []SubCost `json:"parking,omitempty"`
}

// Mode reports which vehicle form this entry uses.
func (v *VehicleUsage) Mode() VehicleMode {
	return VehicleMode(v.TransportMethod)
}

// OtherTransport is a transport leg outside the public/vehicle kinds,
// reported as a single total amount.
type OtherTransport struct {
	Date            string `json:"date"`
	TransportMethod string `json:"transportMethod"`
	Departure       string `json:"departure"`
	Arrival         string `json:"arrival"`
	TotalAmount     string `json:"totalAmount"`
}

// DailyAllowanceSelection is the per-diem category chosen for one trip day.
// An empty category means the day was left unselected.
type DailyAllowanceSelection struct {
	DailyAllowanceCategory string `json:"dailyAllowanceCategory"`
}

// LodgingSelection is the lodging category chosen for one night.
type LodgingSelection struct {
	LodgingCategory string `json:"lodgingCategory"`
}

// Submission is a validated trip-expense form as posted by the mobile app.
// Field presence and shape validation happens upstream; the engine only
// coerces numeric columns defensively. Receipts are opaque to the engine
// and pass through to storage untouched, whatever shape the form gives
// them. The form also posts its own travelDays/lodgingDays counts; those
// are decoded and discarded since the engine recomputes both from the
// dates.
type Submission struct {
	Destination            string                    `json:"destination"`
	Purpose                string                    `json:"purpose"`
	DepartureDate          string                    `json:"departureDate"`
	ReturnDate             string                    `json:"returnDate"`
	PublicTransportDetails []PublicTransport         `json:"publicTransportDetails,omitempty"`
	CarUsageDetails        []VehicleUsage            `json:"carUsageDetails,omitempty"`
	OtherTransportDetails  []OtherTransport          `json:"otherTransportDetails,omitempty"`
	DailyAllowanceDetails  []DailyAllowanceSelection `json:"dailyAllowanceDetails,omitempty"`
	LodgingDetails         []LodgingSelection        `json:"lodgingDetails,omitempty"`
	Receipts               json.RawMessage           `json:"receipts,omitempty"`
	SubmittedAt            string                    `json:"submittedAt,omitempty"`
	IsDraft                bool                      `json:"isDraft,omitempty"`

	// Counts the form includes but the engine recomputes.
	TravelDays  int `json:"travelDays,omitempty"`
	LodgingDays int `json:"lodgingDays,omitempty"`
}
