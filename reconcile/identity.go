// Package reconcile turns guest rosters arriving from inconsistent
// sources into a single deduplicated, deterministically ordered roster.
// It resolves record identity through a priority chain of fields, scores
// record completeness for tie-breaks, merges a backend snapshot with a
// locally cached edit, and collapses accidental duplicates for display.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/roomsync/guest-reconciler/types"
)

// KeyKind tags which field chain produced an identity key, in decreasing
// order of reliability.
type KeyKind string

const (
	// KindDocument keys on the document number, globally unique per person.
	KindDocument KeyKind = "DOC"
	// KindNameBirth keys on first/last name plus date of birth.
	KindNameBirth KeyKind = "NDO"
	// KindName keys on the display name alone. Weak: two guests sharing a
	// common name will collide.
	KindName KeyKind = "NAME"
	// KindFallback keys on the record id. Never merges falsely, but the
	// same person arriving via different channels yields duplicates.
	KindFallback KeyKind = "ID"
)

// IdentityKey decides whether two guest records refer to the same person.
// It is comparable and usable directly as a map key.
type IdentityKey struct {
	Kind  KeyKind
	Value string
}

func (k IdentityKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Value)
}

// canonical trims, collapses internal whitespace, and lower-cases a value
// so that records differing only in casing or spacing compare equal.
func canonical(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// CanonicalName normalizes a display name the same way identity
// resolution does, for callers that need to compare names against
// roster entries (e.g. pinning the booking's main guest).
func CanonicalName(s string) string {
	return canonical(s)
}

// Resolve derives the identity key for a guest record, returning the
// first non-empty option of the priority chain: document number, then
// name+birth, then display name, then the record id.
func Resolve(g types.GuestRecord) IdentityKey {
	if doc := canonical(g.Details.DocumentNumber); doc != "" {
		return IdentityKey{Kind: KindDocument, Value: doc}
	}

	first := canonical(g.Details.FirstName)
	last := canonical(g.Details.LastName)
	dob := canonical(g.Details.DateOfBirth)
	if (first != "" || last != "") && dob != "" {
		return IdentityKey{Kind: KindNameBirth, Value: first + "|" + last + "|" + dob}
	}

	if name := canonical(g.DisplayName()); name != "" {
		return IdentityKey{Kind: KindName, Value: name}
	}

	return IdentityKey{Kind: KindFallback, Value: g.ID}
}

// IdentitySet is an explicit idempotency-key set for creation workflows:
// marking a record after its backend create call prevents a second call
// for the same person. Keys derive from the same Resolve chain as merge
// identity, so a guest that would merge is also a guest that would not
// be re-created.
type IdentitySet struct {
	keys map[IdentityKey]struct{}
}

// NewIdentitySet returns an empty set.
func NewIdentitySet() *IdentitySet {
	return &IdentitySet{keys: make(map[IdentityKey]struct{})}
}

// Mark records the guest's identity key in the set.
func (s *IdentitySet) Mark(g types.GuestRecord) {
	s.keys[Resolve(g)] = struct{}{}
}

// Contains reports whether the guest's identity key has been marked.
func (s *IdentitySet) Contains(g types.GuestRecord) bool {
	_, ok := s.keys[Resolve(g)]
	return ok
}

// Len returns the number of marked identities.
func (s *IdentitySet) Len() int {
	return len(s.keys)
}
