package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomsync/guest-reconciler/types"
)

func TestMergeCachePrecedence(t *testing.T) {
	backend := []types.GuestRecord{
		{ID: "1", Name: "John", Details: types.GuestDetails{DocumentNumber: "AB123"}},
	}
	cache := []types.GuestRecord{
		{ID: "1", Name: "Johnny", Details: types.GuestDetails{DocumentNumber: "AB123"}},
	}

	merged := Merge(backend, cache)

	require.Len(t, merged, 1)
	assert.Equal(t, "Johnny", merged[0].Name)
}

func TestMergeNoInformationLoss(t *testing.T) {
	backend := []types.GuestRecord{
		{
			ID:   "1",
			Name: "Jane Doe",
			Details: types.GuestDetails{
				DocumentNumber: "AB123",
				Nationality:    "GB",
				Gender:         "F",
			},
			DocumentImage: "doc.jpg",
		},
	}
	cache := []types.GuestRecord{
		{
			ID: "1",
			Details: types.GuestDetails{
				DocumentNumber: "AB123",
				DateOfBirth:    "1990-01-01",
			},
			FaceImage: "face.jpg",
		},
	}

	merged := Merge(backend, cache)

	require.Len(t, merged, 1)
	got := merged[0]
	// Values present on either side survive.
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "GB", got.Details.Nationality)
	assert.Equal(t, "F", got.Details.Gender)
	assert.Equal(t, "1990-01-01", got.Details.DateOfBirth)
	assert.Equal(t, "doc.jpg", got.DocumentImage)
	assert.Equal(t, "face.jpg", got.FaceImage)
}

func TestMergeIdempotence(t *testing.T) {
	backend := []types.GuestRecord{
		{ID: "1", Name: "Alice Smith", IsMainGuest: true, Details: types.GuestDetails{DocumentNumber: "A1"}},
		{ID: "2", Name: "Bob Jones", Details: types.GuestDetails{FirstName: "Bob", DateOfBirth: "1985-05-05"}},
	}
	cache := []types.GuestRecord{
		{ID: "2", Name: "Bob Jones", Details: types.GuestDetails{FirstName: "Bob", DateOfBirth: "1985-05-05", Nationality: "US"}},
		{ID: "local-3", Name: "Carol New"},
	}

	once := Merge(backend, cache)
	twice := Merge(once, nil)

	assert.Equal(t, once, twice)
}

func TestMergeNovelCacheIdentitySurfaces(t *testing.T) {
	cache := []types.GuestRecord{
		{ID: "local-1", Details: types.GuestDetails{DocumentNumber: "X1", FirstName: "A"}},
	}

	merged := Merge(nil, cache)

	require.Len(t, merged, 1)
	assert.Equal(t, "X1", merged[0].Details.DocumentNumber)
	assert.Equal(t, "A", merged[0].Details.FirstName)
}

func TestMergeNilInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))

	backend := []types.GuestRecord{{ID: "1", Name: "Jane"}}
	assert.Len(t, Merge(backend, nil), 1)
	assert.Len(t, Merge(nil, backend), 1)
}

func TestMergeNeverInventsMainGuest(t *testing.T) {
	backend := []types.GuestRecord{{ID: "1", Name: "Jane"}}
	cache := []types.GuestRecord{{ID: "1", Name: "Jane", Details: types.GuestDetails{Nationality: "GB"}}}

	merged := Merge(backend, cache)

	require.Len(t, merged, 1)
	assert.False(t, merged[0].IsMainGuest)
}

func TestMergeMainGuestSortedFirstStably(t *testing.T) {
	backend := []types.GuestRecord{
		{ID: "1", Name: "First Regular"},
		{ID: "2", Name: "Second Regular"},
		{ID: "3", Name: "The Main", IsMainGuest: true},
		{ID: "4", Name: "Third Regular"},
	}

	merged := Merge(backend, nil)

	require.Len(t, merged, 4)
	assert.Equal(t, "3", merged[0].ID)
	// Relative order among non-main records preserved.
	assert.Equal(t, []string{"1", "2", "4"}, []string{merged[1].ID, merged[2].ID, merged[3].ID})
}

func TestMergeCacheOnlyIdentityJoinsAfterBackend(t *testing.T) {
	backend := []types.GuestRecord{{ID: "1", Name: "Backend Guest"}}
	cache := []types.GuestRecord{{ID: "local-9", Name: "Local Guest"}}

	merged := Merge(backend, cache)

	require.Len(t, merged, 2)
	assert.Equal(t, "Backend Guest", merged[0].Name)
	assert.Equal(t, "Local Guest", merged[1].Name)
}

func TestMergeDetailsUnionFieldByField(t *testing.T) {
	backend := []types.GuestRecord{
		{ID: "1", Name: "Jane", Details: types.GuestDetails{FirstName: "Jane", LastName: "Doe"}},
	}
	cache := []types.GuestRecord{
		{ID: "1", Name: "Jane", Details: types.GuestDetails{LastName: "Doe-Smith", Nationality: "GB"}},
	}

	merged := Merge(backend, cache)

	require.Len(t, merged, 1)
	assert.Equal(t, "Jane", merged[0].Details.FirstName)     // backend kept
	assert.Equal(t, "Doe-Smith", merged[0].Details.LastName) // cache wins
	assert.Equal(t, "GB", merged[0].Details.Nationality)     // cache adds
}

func TestMergeDocumentTypeFallsBackToBackend(t *testing.T) {
	backend := []types.GuestRecord{
		{ID: "1", Name: "Jane", DocumentType: types.DocumentTypePassport},
	}
	cache := []types.GuestRecord{{ID: "1", Name: "Jane"}}

	merged := Merge(backend, cache)

	require.Len(t, merged, 1)
	assert.Equal(t, types.DocumentTypePassport, merged[0].DocumentType)
}

func TestOverlayPartialUpdateGainsOnly(t *testing.T) {
	base := types.GuestRecord{
		ID:        "1",
		Name:      "Jane Doe",
		FaceImage: "face.jpg",
		Details:   types.GuestDetails{FirstName: "Jane", Nationality: "GB"},
		Progress:  50,
	}
	update := types.GuestRecord{
		ID:       "1",
		Details:  types.GuestDetails{LastName: "Doe"},
		Progress: 75,
	}

	got := Overlay(base, update)

	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "face.jpg", got.FaceImage)
	assert.Equal(t, "Jane", got.Details.FirstName)
	assert.Equal(t, "GB", got.Details.Nationality)
	assert.Equal(t, "Doe", got.Details.LastName)
	assert.Equal(t, 75, got.Progress)
}
