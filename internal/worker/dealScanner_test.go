package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tooldeals/internal/config"
	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/service/deal"
	"tooldeals/internal/domain/value"
	"tooldeals/internal/infrastructure/sources"
	"tooldeals/internal/worker"
	"tooldeals/pkg/errcodes"
)

type fakeRepo struct {
	mu    sync.Mutex
	deals map[string]entity.Deal

	upserts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{deals: make(map[string]entity.Deal)}
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deals[id]
	if !ok {
		return nil, domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	return &d, nil
}

func (r *fakeRepo) UpsertBatch(_ context.Context, deals []entity.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upserts++
	for _, d := range deals {
		r.deals[d.ID] = d
	}
	return nil
}

func (r *fakeRepo) ListActiveBefore(_ context.Context, cutoff time.Time) ([]entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stale []entity.Deal
	for _, d := range r.deals {
		if d.Status == value.StatusActive && d.LastSeen.Before(cutoff) {
			stale = append(stale, d)
		}
	}
	return stale, nil
}

func (r *fakeRepo) ExpireBatch(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		d := r.deals[id]
		d.Status = value.StatusExpired
		r.deals[id] = d
	}
	return nil
}

type fakeSource struct {
	tag      string
	stores   []value.Store
	listings map[string][]entity.Listing
	err      error

	searches []string
}

func (s *fakeSource) Tag() string              { return s.tag }
func (s *fakeSource) Stores() []value.Store    { return s.stores }
func (s *fakeSource) RateDelay() time.Duration { return 0 }

func (s *fakeSource) Search(_ context.Context, term string) ([]entity.Listing, error) {
	s.searches = append(s.searches, term)
	if s.err != nil {
		return nil, s.err
	}
	return s.listings[term], nil
}

func glitchListing(id string) entity.Listing {
	return entity.Listing{
		SourceTag:     "imp",
		NativeID:      id,
		Title:         "Milwaukee M18 Price Error",
		Price:         9.97,
		OriginalPrice: 399.00,
		URL:           "https://hd.example/" + id,
		Store:         value.StoreHomeDepot,
		DealType:      value.DealTypeGlitch,
	}
}

func scannerConfig() config.Scanner {
	return config.Scanner{
		MinDiscountPercent: 15,
		RetentionWindow:    24 * time.Hour,
		SourceTimeout:      time.Minute,
		Keywords:           []string{"Milwaukee M18 Fuel"},
	}
}

func TestScanCyclePersistsAndNotifies(t *testing.T) {
	rq := require.New(t)

	repo := newFakeRepo()
	src := &fakeSource{
		tag:    "imp",
		stores: []value.Store{value.StoreHomeDepot},
		listings: map[string][]entity.Listing{
			"Milwaukee M18 Fuel": {glitchListing("1")},
		},
	}

	notifications := make(chan deal.Notification, 8)
	engine := deal.NewEngine().WithUrgentDealTypes(value.DealTypeGlitch)

	scanner := worker.NewDealScanner(engine, repo, []sources.Source{src}, scannerConfig(), notifications)

	rq.NoError(scanner.ScanCycle(context.Background()))

	stored, err := repo.GetByID(context.Background(), "imp-1")
	rq.NoError(err)
	rq.Equal(value.StatusActive, stored.Status)
	rq.Equal(value.DealTypeGlitch, stored.DealType)

	rq.Len(notifications, 1)
	alert := <-notifications
	rq.Equal("imp-1", alert.Deal.ID)
}

func TestScanCycleSourceFailureIsolated(t *testing.T) {
	rq := require.New(t)

	repo := newFakeRepo()
	broken := &fakeSource{
		tag:    "awin",
		stores: []value.Store{value.StoreAcme},
		err:    errors.New("upstream down"),
	}
	healthy := &fakeSource{
		tag:    "imp",
		stores: []value.Store{value.StoreHomeDepot},
		listings: map[string][]entity.Listing{
			"Milwaukee M18 Fuel": {glitchListing("2")},
		},
	}

	notifications := make(chan deal.Notification, 8)
	scanner := worker.NewDealScanner(
		deal.NewEngine(), repo,
		[]sources.Source{broken, healthy},
		scannerConfig(), notifications,
	)

	rq.NoError(scanner.ScanCycle(context.Background()))

	// The broken source cost nothing but its own listings.
	_, err := repo.GetByID(context.Background(), "imp-2")
	rq.NoError(err)
}

func TestScanCycleDedupesWithinCycle(t *testing.T) {
	rq := require.New(t)

	repo := newFakeRepo()
	src := &fakeSource{
		tag:    "imp",
		stores: []value.Store{value.StoreHomeDepot},
		listings: map[string][]entity.Listing{
			"Milwaukee M18 Fuel": {glitchListing("3")},
			"Milwaukee Packout":  {glitchListing("3")},
		},
	}

	cfg := scannerConfig()
	cfg.Keywords = []string{"Milwaukee M18 Fuel", "Milwaukee Packout"}

	notifications := make(chan deal.Notification, 8)
	scanner := worker.NewDealScanner(deal.NewEngine(), repo, []sources.Source{src}, cfg, notifications)

	rq.NoError(scanner.ScanCycle(context.Background()))

	// Two keywords surfaced the same item; only the first one counts.
	rq.Len(notifications, 1)
}

func TestScanCycleSweepsStaleDeals(t *testing.T) {
	rq := require.New(t)

	repo := newFakeRepo()
	repo.deals["amz-OLD"] = entity.Deal{
		ID:       "amz-OLD",
		Status:   value.StatusActive,
		LastSeen: time.Now().Add(-48 * time.Hour),
	}
	repo.deals["manual-keep"] = entity.Deal{
		ID:       "manual-keep",
		Status:   value.StatusActive,
		LastSeen: time.Now().Add(-48 * time.Hour),
	}

	notifications := make(chan deal.Notification, 1)
	scanner := worker.NewDealScanner(deal.NewEngine(), repo, nil, scannerConfig(), notifications)

	rq.NoError(scanner.ScanCycle(context.Background()))

	rq.Equal(value.StatusExpired, repo.deals["amz-OLD"].Status)
	rq.Equal(value.StatusActive, repo.deals["manual-keep"].Status)
}

func TestScanCycleSkipsIrrelevantKeywords(t *testing.T) {
	rq := require.New(t)

	repo := newFakeRepo()
	src := &fakeSource{
		tag:    "imp",
		stores: []value.Store{value.StoreWalmart},
	}

	cfg := scannerConfig()
	cfg.Keywords = nil // fall back to the built-in targeted list

	notifications := make(chan deal.Notification, 1)
	scanner := worker.NewDealScanner(deal.NewEngine(), repo, []sources.Source{src}, cfg, notifications)

	rq.NoError(scanner.ScanCycle(context.Background()))

	for _, term := range src.searches {
		rq.NotContains([]string{"Kobalt 24v", "Husky Tool Chest", "Ridgid 18v"}, term)
	}
}
