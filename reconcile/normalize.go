package reconcile

import (
	"github.com/roomsync/guest-reconciler/types"
)

// Normalize collapses accidental duplicates inside a single roster, e.g.
// the same guest returned twice by the backend under different shapes,
// or near-duplicate entries produced by repeated partial edits.
//
// Records are bucketed by identity key, with a name-alias index on top:
// once a display name has been bound to a bucket, every later record
// carrying that name is redirected into the same bucket even when its
// own key differs. This catches the person first seen under a weak key
// (name only) and later under a strong one (document number), which
// would otherwise survive as two entries.
//
// The redirection is first-occurrence-wins and therefore order
// dependent: the first record seen under a name fixes that name's
// canonical bucket for the rest of the pass. Preserved as observed
// behavior.
//
// Within a bucket the winner is the main guest if exactly one side
// carries the flag, otherwise the record with the higher completeness
// score. Output is stably sorted main-guest-first.
func Normalize(list []types.GuestRecord) []types.GuestRecord {
	buckets := make(map[IdentityKey]types.GuestRecord, len(list))
	order := make([]IdentityKey, 0, len(list))
	nameIndex := make(map[string]IdentityKey)

	for _, g := range list {
		key := Resolve(g)

		name := canonical(g.Name)
		if name != "" {
			if alias, bound := nameIndex[name]; bound {
				key = alias
			}
		}

		prev, seen := buckets[key]
		if !seen {
			buckets[key] = g
			order = append(order, key)
		} else {
			buckets[key] = chooseBetter(prev, g)
		}

		if name != "" {
			nameIndex[name] = key
		}
	}

	out := make([]types.GuestRecord, 0, len(order))
	for _, key := range order {
		out = append(out, buckets[key])
	}
	return sortMainGuestFirst(out)
}

// chooseBetter keeps the main guest over a non-main record, and the
// higher-scoring record otherwise. Ties keep the earlier record.
func chooseBetter(prev, cur types.GuestRecord) types.GuestRecord {
	if !prev.IsMainGuest && cur.IsMainGuest {
		return cur
	}
	if prev.IsMainGuest && !cur.IsMainGuest {
		return prev
	}

	if Score(cur) > Score(prev) {
		return cur
	}
	return prev
}
