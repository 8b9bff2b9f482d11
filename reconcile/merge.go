package reconcile

import (
	"sort"

	"github.com/roomsync/guest-reconciler/types"
)

// Merge reconciles a backend roster with a cached roster into one list.
//
// The backend establishes the base truth; every backend record seeds the
// result under its identity key. Cache records then overlay field by
// field: the cache holds the most recent user intent, so its non-empty
// values win, while absent values fall back to the backend's. A cache
// record whose identity the backend does not know is kept, overlaid onto
// an empty base, so a guest added locally before syncing still surfaces.
//
// Nil inputs are treated as empty rosters. The output carries at most
// one record per identity key, stably sorted main-guest-first with the
// original relative order preserved otherwise.
func Merge(backend, cache []types.GuestRecord) []types.GuestRecord {
	byKey := make(map[IdentityKey]types.GuestRecord, len(backend))
	order := make([]IdentityKey, 0, len(backend)+len(cache))

	for _, g := range backend {
		key := Resolve(g)
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = g
	}

	for _, c := range cache {
		key := Resolve(c)
		base, seen := byKey[key]
		if !seen {
			order = append(order, key)
		}
		byKey[key] = overlay(base, c)
	}

	out := make([]types.GuestRecord, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return sortMainGuestFirst(out)
}

// Overlay combines an update over a base record with the same field
// rules Merge applies between cache and backend: non-empty update values
// win, empty ones keep the base's, details are unioned field by field.
func Overlay(base, update types.GuestRecord) types.GuestRecord {
	return overlay(base, update)
}

// overlay combines a cache record over a base record. Every cache field
// that carries a value replaces the base's; empty cache fields keep the
// base value, so information is only ever gained. A cached record always
// carries its main-guest flag and progress explicitly (the save path
// materializes both), so those take the cache side unconditionally.
func overlay(base, cache types.GuestRecord) types.GuestRecord {
	merged := cache
	merged.ID = pick(cache.ID, base.ID)
	merged.Name = pick(cache.Name, base.Name)
	merged.BookingRoomID = pick(cache.BookingRoomID, base.BookingRoomID)
	merged.FaceImage = pick(cache.FaceImage, base.FaceImage)
	merged.DocumentImage = pick(cache.DocumentImage, base.DocumentImage)
	if cache.DocumentType == "" {
		merged.DocumentType = base.DocumentType
	}
	merged.Details = overlayDetails(base.Details, cache.Details)
	return merged
}

// overlayDetails unions two detail blocks field by field, cache side
// winning wherever it is non-empty.
func overlayDetails(base, cache types.GuestDetails) types.GuestDetails {
	return types.GuestDetails{
		FirstName:      pick(cache.FirstName, base.FirstName),
		LastName:       pick(cache.LastName, base.LastName),
		Gender:         pick(cache.Gender, base.Gender),
		Nationality:    pick(cache.Nationality, base.Nationality),
		DateOfBirth:    pick(cache.DateOfBirth, base.DateOfBirth),
		DocumentNumber: pick(cache.DocumentNumber, base.DocumentNumber),
		CurrentAddress: pick(cache.CurrentAddress, base.CurrentAddress),
		DateOfArrival:  pick(cache.DateOfArrival, base.DateOfArrival),
		VisaType:       pick(cache.VisaType, base.VisaType),
		StayExpiryDate: pick(cache.StayExpiryDate, base.StayExpiryDate),
		PointOfEntry:   pick(cache.PointOfEntry, base.PointOfEntry),
		TMCardNumber:   pick(cache.TMCardNumber, base.TMCardNumber),
	}
}

func pick(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}

// sortMainGuestFirst moves main guests to the front without disturbing
// the relative order among equal ranks.
func sortMainGuestFirst(list []types.GuestRecord) []types.GuestRecord {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].IsMainGuest && !list[j].IsMainGuest
	})
	return list
}
