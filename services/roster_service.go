package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roomsync/guest-reconciler/logger"
	"github.com/roomsync/guest-reconciler/reconcile"
	"github.com/roomsync/guest-reconciler/store"
	"github.com/roomsync/guest-reconciler/types"
)

// RosterService orchestrates roster reconciliation for the check-in
// flow: every load runs backend + cache through merge and normalize,
// and every local edit persists immediately so a later backend refetch
// cannot resurrect stale data.
//
// No method returns an error. A failed cache write is logged and the
// in-memory roster is still returned; the guest must always see some
// roster rather than a crash (the cache heals on the next save).
type RosterService struct {
	cache store.CacheStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewRosterService creates a RosterService backed by the given cache.
func NewRosterService(cache store.CacheStore) *RosterService {
	return &RosterService{
		cache: cache,
		log:   logger.GetLogger(),
		now:   time.Now,
	}
}

// LoadRoster reconciles a freshly fetched backend roster with whatever
// the cache holds for the booking. Works with an empty backend list:
// locally added guests the backend does not yet know still surface.
func (s *RosterService) LoadRoster(ctx context.Context, key types.BookingKey, backend []types.GuestRecord) []types.GuestRecord {
	cached := s.cache.Load(ctx, key)
	merged := reconcile.Merge(backend, cached)
	return reconcile.Normalize(merged)
}

// SaveRoster normalizes and persists the roster, returning the
// normalized list the UI should render.
func (s *RosterService) SaveRoster(ctx context.Context, key types.BookingKey, roster []types.GuestRecord) []types.GuestRecord {
	normalized := reconcile.Normalize(roster)
	if err := s.cache.Save(ctx, key, normalized); err != nil {
		s.log.Warnw("Failed to persist roster, continuing with in-memory state",
			"bookingKey", key.StorageKey(), "error", err)
	}
	return normalized
}

// ApplyGuestUpdate overlays an edited record onto its roster entry,
// matched by id. Fields the update leaves empty keep their current
// values, so a partial edit (one captured photo, one filled field)
// never erases data. An update for an unknown id joins the roster.
func (s *RosterService) ApplyGuestUpdate(ctx context.Context, key types.BookingKey, roster []types.GuestRecord, update types.GuestRecord) []types.GuestRecord {
	s.log.Debugw("Applying guest update",
		"bookingKey", key.StorageKey(),
		"guestId", update.ID,
		"documentNumber", logger.MaskDocumentNumber(update.Details.DocumentNumber),
	)

	next := make([]types.GuestRecord, 0, len(roster)+1)
	applied := false
	for _, g := range roster {
		if g.ID == update.ID {
			next = append(next, reconcile.Overlay(g, update))
			applied = true
			continue
		}
		next = append(next, g)
	}
	if !applied {
		next = append(next, update)
	}
	return s.SaveRoster(ctx, key, next)
}

// AddLocalGuest appends a guest added on the device before any backend
// round-trip, assigning a synthetic id when the record has none. The id
// stays until a create call replaces it with a durable backend id.
func (s *RosterService) AddLocalGuest(ctx context.Context, key types.BookingKey, roster []types.GuestRecord, guest types.GuestRecord) []types.GuestRecord {
	if guest.ID == "" {
		guest.ID = s.newLocalID()
	}
	return s.SaveRoster(ctx, key, append(roster, guest))
}

// DeleteGuests removes the selected records from the roster, except any
// main guest, which is exempt from deletion even when selected. The
// survivors are persisted immediately so the deleted entries cannot
// come back from a stale snapshot.
func (s *RosterService) DeleteGuests(ctx context.Context, key types.BookingKey, roster []types.GuestRecord, ids []string) []types.GuestRecord {
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	next := make([]types.GuestRecord, 0, len(roster))
	for _, g := range roster {
		if _, picked := selected[g.ID]; picked && !g.IsMainGuest {
			continue
		}
		next = append(next, g)
	}
	return s.SaveRoster(ctx, key, next)
}

// SetMainGuestByName pins the main-guest flag onto the roster entry
// whose name matches the booking's primary guest, clearing it
// elsewhere. Matching uses the same name normalization as identity
// resolution.
func (s *RosterService) SetMainGuestByName(ctx context.Context, key types.BookingKey, roster []types.GuestRecord, mainName string) []types.GuestRecord {
	want := reconcile.CanonicalName(mainName)
	if want == "" {
		return reconcile.Normalize(roster)
	}

	next := make([]types.GuestRecord, 0, len(roster))
	for _, g := range roster {
		g.IsMainGuest = reconcile.CanonicalName(g.Name) == want
		next = append(next, g)
	}
	return s.SaveRoster(ctx, key, next)
}

// PendingCreates returns the roster entries whose identity has not been
// marked in the created set, i.e. the guests a creation workflow still
// needs to submit. Marking created guests through the same identity
// chain as merge keeps creation idempotent across re-renders.
func (s *RosterService) PendingCreates(roster []types.GuestRecord, created *reconcile.IdentitySet) []types.GuestRecord {
	pending := make([]types.GuestRecord, 0, len(roster))
	for _, g := range roster {
		if !created.Contains(g) {
			pending = append(pending, g)
		}
	}
	return pending
}

// newLocalID builds a synthetic guest id: a timestamp for ordering plus
// a uuid fragment so two guests added in the same second cannot collide.
func (s *RosterService) newLocalID() string {
	return "local-" + s.now().UTC().Format("20060102150405") + "-" + uuid.New().String()[:8]
}
