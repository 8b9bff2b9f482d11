package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomsync/guest-reconciler/types"
)

func TestNormalizeDocumentBeatsNamePlaceholder(t *testing.T) {
	placeholder := types.GuestRecord{ID: "a", Name: "Guest 1"}
	documented := types.GuestRecord{
		ID:   "b",
		Name: "Guest 1",
		Details: types.GuestDetails{
			DocumentNumber: "AB123",
			FirstName:      "Jane",
			LastName:       "Doe",
		},
	}

	out := Normalize([]types.GuestRecord{placeholder, documented})

	require.Len(t, out, 1)
	assert.Equal(t, "AB123", out[0].Details.DocumentNumber)
	assert.Equal(t, "b", out[0].ID)
}

func TestNormalizeSameBucketContentsUnderReordering(t *testing.T) {
	a := types.GuestRecord{ID: "a", Name: "Jane Doe", Progress: 10}
	b := types.GuestRecord{
		ID:      "b",
		Name:    "Jane Doe",
		Details: types.GuestDetails{DocumentNumber: "AB123"},
	}

	forward := Normalize([]types.GuestRecord{a, b})
	backward := Normalize([]types.GuestRecord{b, a})

	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.Equal(t, forward[0], backward[0])
}

func TestNormalizeAliasRedirectsWeakThenStrongKey(t *testing.T) {
	// First seen via a weak name-only key, later via a document key; the
	// name alias must collapse both into one entry.
	weak := types.GuestRecord{ID: "a", Name: "Jane Doe", Progress: 0}
	strong := types.GuestRecord{
		ID:       "b",
		Name:     "Jane Doe",
		Details:  types.GuestDetails{DocumentNumber: "AB123"},
		Progress: 100,
	}

	out := Normalize([]types.GuestRecord{weak, strong})

	require.Len(t, out, 1)
	assert.Equal(t, 100, out[0].Progress)
}

func TestNormalizeMainGuestFlagBeatsScore(t *testing.T) {
	rich := types.GuestRecord{
		ID:       "a",
		Name:     "Jane Doe",
		Details:  types.GuestDetails{DocumentNumber: "AB123", FirstName: "Jane", LastName: "Doe"},
		Progress: 100,
	}
	mainButSparse := types.GuestRecord{ID: "b", Name: "Jane Doe", IsMainGuest: true}

	out := Normalize([]types.GuestRecord{rich, mainButSparse})

	require.Len(t, out, 1)
	assert.True(t, out[0].IsMainGuest)
	assert.Equal(t, "b", out[0].ID)
}

func TestNormalizeScoreTieKeepsEarlierRecord(t *testing.T) {
	first := types.GuestRecord{ID: "a", Name: "Jane Doe", Progress: 10}
	second := types.GuestRecord{ID: "b", Name: "Jane Doe", Progress: 10}

	out := Normalize([]types.GuestRecord{first, second})

	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestNormalizeDistinctGuestsStaySeparate(t *testing.T) {
	out := Normalize([]types.GuestRecord{
		{ID: "1", Name: "Alice Smith", Details: types.GuestDetails{DocumentNumber: "A1"}},
		{ID: "2", Name: "Bob Jones", Details: types.GuestDetails{DocumentNumber: "B2"}},
		{ID: "3", Name: "Carol White"},
	})

	assert.Len(t, out, 3)
}

func TestNormalizeMainGuestFirst(t *testing.T) {
	out := Normalize([]types.GuestRecord{
		{ID: "1", Name: "Alice Smith"},
		{ID: "2", Name: "Bob Jones", IsMainGuest: true},
		{ID: "3", Name: "Carol White"},
	})

	require.Len(t, out, 3)
	assert.Equal(t, "2", out[0].ID)
	assert.Equal(t, "1", out[1].ID)
	assert.Equal(t, "3", out[2].ID)
}

func TestNormalizeEmptyAndNil(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize([]types.GuestRecord{}))
}

func TestNormalizeNamelessRecordsBucketByID(t *testing.T) {
	// Records with no name at all cannot be alias-redirected; each keeps
	// its own fallback bucket.
	out := Normalize([]types.GuestRecord{
		{ID: "local-1"},
		{ID: "local-2"},
	})

	assert.Len(t, out, 2)
}
