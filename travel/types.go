// Package travel implements the program generation pipeline: itinerary
// planning, activity normalization and enrichment, accommodation and
// transport lookup, and final assembly.
package travel

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultCurrency is used for every generated program.
	DefaultCurrency = "EUR"

	programVersion   = "1.0"
	programVersionV2 = "2.0"
)

// Date is a calendar date serialized as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate builds a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date format: %q", s)
	}
	return Date{t}, nil
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is a wall-clock time of day serialized as "15:04".
type ClockTime struct {
	time.Time
}

// ParseClockTime parses a "15:04" string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time format: %q", s)
	}
	return ClockTime{t}, nil
}

func (t ClockTime) String() string {
	return t.Time.Format("15:04")
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ClockTime{}
		return nil
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Destination is one stop of a requested trip. Latitude and longitude are
// optional and only used to resolve the destination timezone for exports.
type Destination struct {
	City         string  `json:"city"`
	Country      string  `json:"country"`
	DurationDays int     `json:"duration_days"`
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
}

// TravelRequest is the primary program generation request.
type TravelRequest struct {
	Destinations               []Destination `json:"destinations"`
	StartDate                  Date          `json:"start_date"`
	EndDate                    Date          `json:"end_date"`
	Budget                     float64       `json:"budget"`
	Mood                       string        `json:"mood"`
	TravelStyle                string        `json:"travel_style,omitempty"`
	Interests                  []string      `json:"interests,omitempty"`
	GroupSize                  int           `json:"group_size"`
	SpecialRequirements        string        `json:"special_requirements,omitempty"`
	PreferredAccommodationType string        `json:"preferred_accommodation_type,omitempty"`
	PreferredTransportation    string        `json:"preferred_transportation,omitempty"`
}

// Validate checks the request bounds. duration_days is deliberately not
// reconciled against the start/end date range.
func (r TravelRequest) Validate() error {
	if len(r.Destinations) == 0 {
		return fmt.Errorf("at least one destination is required")
	}
	for _, d := range r.Destinations {
		if strings.TrimSpace(d.City) == "" {
			return fmt.Errorf("destination city is required")
		}
		if d.DurationDays < 1 || d.DurationDays > 30 {
			return fmt.Errorf("destination %s: duration_days must be between 1 and 30", d.City)
		}
	}
	if r.EndDate.Before(r.StartDate.Time) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	if r.Budget <= 0 {
		return fmt.Errorf("budget must be positive")
	}
	if r.GroupSize < 1 || r.GroupSize > 20 {
		return fmt.Errorf("group_size must be between 1 and 20")
	}
	return nil
}

// ProgramRequest is the provider-orchestrated (v2) generation request.
type ProgramRequest struct {
	Type                string        `json:"type"` // mono or multi
	StartDate           Date          `json:"start_date"`
	EndDate             Date          `json:"end_date"`
	Destinations        []Destination `json:"destinations"`
	Mood                string        `json:"mood"`
	Budget              float64       `json:"budget"`
	GroupSize           int           `json:"group_size"`
	SpecialRequirements string        `json:"special_requirements,omitempty"`
}

// Validate checks the v2 request bounds.
func (r ProgramRequest) Validate() error {
	if r.Type != "mono" && r.Type != "multi" {
		return fmt.Errorf("type must be mono or multi")
	}
	base := TravelRequest{
		Destinations: r.Destinations,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Budget:       r.Budget,
		Mood:         r.Mood,
		GroupSize:    r.GroupSize,
	}
	return base.Validate()
}

// Activity is one canonical activity record. Records arriving from providers
// or the generative backend are coerced into this shape by the normalizer.
type Activity struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	DurationHours float64 `json:"duration_hours"`
	Cost          float64 `json:"cost"`
	Location      string  `json:"location,omitempty"`
	Category      string  `json:"category,omitempty"`
	BookingURL    string  `json:"booking_url,omitempty"`
	Source        string  `json:"source"`
}

// Accommodation is one lodging entry, one per destination per program.
type Accommodation struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Location      string  `json:"location"`
	CheckIn       Date    `json:"check_in"`
	CheckOut      Date    `json:"check_out"`
	PricePerNight float64 `json:"price_per_night"`
	BookingURL    string  `json:"booking_url,omitempty"`
}

// Transportation is one leg between consecutive destinations.
type Transportation struct {
	Type          string    `json:"type"`
	FromLocation  string    `json:"from_location"`
	ToLocation    string    `json:"to_location"`
	DepartureTime ClockTime `json:"departure_time"`
	ArrivalTime   ClockTime `json:"arrival_time"`
	Cost          float64   `json:"cost"`
	BookingURL    string    `json:"booking_url,omitempty"`
}

// DayPlan is one calendar day of a destination stay.
type DayPlan struct {
	Date       Date       `json:"date"`
	Activities []Activity `json:"activities"`
	Meals      []string   `json:"meals"`
	Notes      string     `json:"notes,omitempty"`
}

// DestinationPlan is the per-city container of day plans, accommodation and
// transportation.
type DestinationPlan struct {
	City           string           `json:"city"`
	Country        string           `json:"country"`
	Days           []DayPlan        `json:"days"`
	Accommodations []Accommodation  `json:"accommodations"`
	Transportation []Transportation `json:"transportation"`
	Latitude       float64          `json:"latitude,omitempty"`
	Longitude      float64          `json:"longitude,omitempty"`
}

// TravelProgram is the assembled document.
type TravelProgram struct {
	Destinations []DestinationPlan `json:"destinations"`
	TotalCost    float64           `json:"total_cost"`
	Currency     string            `json:"currency"`
	GeneratedAt  string            `json:"generated_at"`
	Version      string            `json:"version"`
}

// ProgramResponse is the v2 response with a metadata block.
type ProgramResponse struct {
	Destinations []DestinationPlan `json:"destinations"`
	TotalCost    float64           `json:"total_cost"`
	Currency     string            `json:"currency"`
	GeneratedAt  string            `json:"generated_at"`
	Version      string            `json:"version"`
	Metadata     map[string]any    `json:"metadata"`
}
