package reconcile

import (
	"strings"

	"github.com/roomsync/guest-reconciler/types"
)

// Score computes the completeness score for a guest record: a weighted
// count of populated fields, used only to break ties between records
// sharing an identity key. The document number outweighs the name fields
// so a name-only placeholder cannot beat a record with verified document
// data. Progress is added as-is; it is caller-derived and treated as
// opaque, never recomputed here.
func Score(g types.GuestRecord) int {
	d := g.Details
	score := 0

	if strings.TrimSpace(d.FirstName) != "" {
		score += 2
	}
	if strings.TrimSpace(d.LastName) != "" {
		score += 2
	}
	if strings.TrimSpace(d.DocumentNumber) != "" {
		score += 3
	}

	for _, v := range []string{
		d.DateOfBirth,
		d.Nationality,
		d.Gender,
		d.CurrentAddress,
		d.DateOfArrival,
		d.VisaType,
		d.StayExpiryDate,
		d.PointOfEntry,
		d.TMCardNumber,
	} {
		if strings.TrimSpace(v) != "" {
			score++
		}
	}

	if g.FaceImage != "" {
		score++
	}
	if g.DocumentImage != "" {
		score++
	}

	return score + g.Progress
}
