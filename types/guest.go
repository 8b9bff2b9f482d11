package types

import (
	"fmt"
	"strings"
)

// DocumentType identifies the kind of identity document a guest presented.
type DocumentType string

const (
	DocumentTypeIDCard   DocumentType = "ID_CARD"
	DocumentTypePassport DocumentType = "PASSPORT"
)

// GuestDetails holds the optional per-guest attributes collected during
// check-in. Every field may be empty; the arrival/visa fields are only
// populated for passport guests.
type GuestDetails struct {
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	CurrentAddress string `json:"currentAddress,omitempty"`
	DateOfArrival  string `json:"dateOfArrival,omitempty"`
	VisaType       string `json:"visaType,omitempty"`
	StayExpiryDate string `json:"stayExpiryDate,omitempty"`
	PointOfEntry   string `json:"pointOfEntry,omitempty"`
	TMCardNumber   string `json:"tmCardNumber,omitempty"`
}

// IsEmpty reports whether no detail field carries a value.
func (d GuestDetails) IsEmpty() bool {
	return d == GuestDetails{}
}

// GuestRecord is the canonical in-memory shape for one person on a
// booking. ID is the only field guaranteed non-empty; it may be a
// synthetic local id until the backend assigns a durable one.
type GuestRecord struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	IsMainGuest   bool         `json:"isMainGuest"`
	DocumentType  DocumentType `json:"documentType,omitempty"`
	Details       GuestDetails `json:"details"`
	FaceImage     string       `json:"faceImage,omitempty"`
	DocumentImage string       `json:"documentImage,omitempty"`
	Progress      int          `json:"progress"`
	BookingRoomID string       `json:"bookingRoomId,omitempty"`
}

// DisplayName returns the best available display string: the explicit
// name, else "First Last" assembled from details.
func (g GuestRecord) DisplayName() string {
	if name := strings.TrimSpace(g.Name); name != "" {
		return name
	}
	full := strings.TrimSpace(strings.TrimSpace(g.Details.FirstName) + " " + strings.TrimSpace(g.Details.LastName))
	return full
}

// CacheEntry is the persisted snapshot of a booking's roster. The field
// names match the historical storage layout so previously written
// payloads remain readable.
type CacheEntry struct {
	Timestamp int64         `json:"__ts"`
	Guests    []GuestRecord `json:"guests"`
}

// BookingKey scopes a cached roster to a booking, and optionally to one
// room of a multi-room booking. Two keys that differ in either part
// address disjoint storage slots.
type BookingKey struct {
	BookingID     string
	BookingRoomID string
}

// NewBookingKey builds a key, treating a blank room id as unscoped.
func NewBookingKey(bookingID, bookingRoomID string) BookingKey {
	return BookingKey{
		BookingID:     strings.TrimSpace(bookingID),
		BookingRoomID: strings.TrimSpace(bookingRoomID),
	}
}

// StorageKey renders the key in the on-disk format:
// guest_cache_<bookingId> or guest_cache_<bookingId>_<bookingRoomId>.
func (k BookingKey) StorageKey() string {
	if k.BookingRoomID != "" {
		return fmt.Sprintf("guest_cache_%s_%s", k.BookingID, k.BookingRoomID)
	}
	return fmt.Sprintf("guest_cache_%s", k.BookingID)
}

// Valid reports whether the key carries a booking id. Loading or saving
// without one would address a shared slot and mix unrelated rosters.
func (k BookingKey) Valid() bool {
	return k.BookingID != ""
}
