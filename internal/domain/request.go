package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

type RequestStatus string

const (
	// StatusActive marks a stored request still awaiting a matching offer.
	StatusActive RequestStatus = "active"
	// StatusHeld marks a request whose booking was created and ticket held.
	StatusHeld RequestStatus = "held"
	// StatusQueued is the transient "stored, not yet matched" synonym.
	StatusQueued RequestStatus = "queued"
	// StatusSuccess is the legacy "matched, no booking step" outcome.
	StatusSuccess RequestStatus = "success"
	// StatusError marks a request retained for audit after a failed attempt.
	StatusError RequestStatus = "error"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusActive, StatusHeld, StatusQueued, StatusSuccess, StatusError:
		return true
	}
	return false
}

// BookingPreference is one acceptable carrier/flight/class combination.
// Preferences are evaluated in list order, first match wins.
type BookingPreference struct {
	ID           int    `json:"id"`
	BookingClass string `json:"bookingClass" validate:"required"`
	FlightNumber string `json:"flightNumber" validate:"required"`
	CarrierCode  string `json:"carrierCode" validate:"required"`
}

// FlightRequest is the persisted record of one agent submission. The search
// query and traveler info are stored verbatim; the system only interprets the
// fields it actually consumes.
type FlightRequest struct {
	ID                 string              `json:"id"`
	SubmittedBy        string              `json:"submitted_by"`
	SearchQuery        json.RawMessage     `json:"search_query"`
	TravelerInfo       json.RawMessage     `json:"traveler_info"`
	BookingPreferences []BookingPreference `json:"booking_preferences"`
	MatchedPreference  *BookingPreference  `json:"matched_preference,omitempty"`
	Status             RequestStatus       `json:"status"`
	PNRNumber          *string             `json:"pnr_number,omitempty"`
	DedupKey           string              `json:"-"`
	LastCheckedAt      time.Time           `json:"last_checked_at"`
	SubmittedAt        time.Time           `json:"submitted_at"`
}

// ComputeDedupKey derives the duplicate-detection key for a logical request:
// same requester, same itinerary query, same preference list.
func ComputeDedupKey(submittedBy string, searchQuery json.RawMessage, prefs []BookingPreference) string {
	h := sha256.New()
	h.Write([]byte(submittedBy))
	h.Write([]byte{0})
	h.Write(searchQuery)
	h.Write([]byte{0})
	encoded, _ := json.Marshal(prefs)
	h.Write(encoded)
	return hex.EncodeToString(h.Sum(nil))
}
