package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
	"tooldeals/internal/infrastructure/persistence"
	"tooldeals/pkg/errcodes"
	"tooldeals/pkg/httpx/reply"
	"tooldeals/pkg/httpx/req"
	"tooldeals/pkg/lox"
	"tooldeals/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const defaultListLimit = 200

type dealRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	UpsertBatch(ctx context.Context, deals []entity.Deal) error
	List(ctx context.Context, filter persistence.ListFilter) ([]entity.Deal, error)
	DeleteByID(ctx context.Context, id string) error
	PurgeStoresNotIn(ctx context.Context, keep []value.Store) (int64, error)
}

type settingsRepository interface {
	GetFeaturedVideo(ctx context.Context) (*entity.FeaturedVideo, error)
}

type DealServer struct {
	deals    dealRepository
	settings settingsRepository
	cache    responseCache
}

func NewDealServer(deals dealRepository, settings settingsRepository, cacheClient *redis.Client, cacheTTL time.Duration) DealServer {
	return DealServer{
		deals:    deals,
		settings: settings,
		cache:    newResponseCache(cacheClient, cacheTTL),
	}
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filter, err := listFilterFromQuery(r)
	if err != nil {
		return asFailure(err)
	}

	cacheKey := r.URL.RawQuery
	if body, ok := s.cache.get(ctx, cacheKey); ok {
		writeCached(w, body)
		return nil
	}

	deals, err := s.deals.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("deals.List: %w", err)
	}

	body, err := json.Marshal(lox.Map(deals, newRESTDeal))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	s.cache.set(ctx, cacheKey, body)
	writeCached(w, body)

	return nil
}

func (s DealServer) getV1DealsGlitches(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	deals, err := s.deals.List(ctx, persistence.ListFilter{
		DealType: value.DealTypeGlitch,
		Statuses: []value.Status{value.StatusActive},
		Limit:    defaultListLimit,
	})
	if err != nil {
		return fmt.Errorf("deals.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(deals, newRESTDeal))

	return nil
}

func (s DealServer) postV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.NewDeal
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deal, err := newManualDeal(request, time.Now())
	if err != nil {
		return asFailure(err)
	}

	if err := s.deals.UpsertBatch(ctx, []entity.Deal{deal}); err != nil {
		return fmt.Errorf("deals.UpsertBatch: %w", err)
	}

	s.cache.invalidate(ctx)
	reply.JSON(ctx, w, http.StatusCreated, newRESTDeal(deal))

	return nil
}

// patchV1DealPublish promotes a curated draft to active once an admin has
// attached a verified affiliate link.
func (s DealServer) patchV1DealPublish(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var request rest.PublishDeal
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return asFailure(err)
	}

	if deal.Status != value.StatusDraft {
		return asFailure(domain.NewError(errcodes.DealNotDraft,
			fmt.Sprintf("deal %s is %s, only drafts can be published", id, deal.Status)))
	}

	now := time.Now()
	deal.URL = request.URL
	if request.Image != "" {
		deal.Image = request.Image
	}
	if request.Price > 0 {
		deal.Price = request.Price
	}
	if request.OriginalPrice > 0 {
		deal.OriginalPrice = request.OriginalPrice
	}
	deal.Status = value.StatusActive
	deal.Timestamp = now
	deal.LastSeen = now
	deal.Hot = true

	if err := s.deals.UpsertBatch(ctx, []entity.Deal{*deal}); err != nil {
		return fmt.Errorf("deals.UpsertBatch: %w", err)
	}

	s.cache.invalidate(ctx)
	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(*deal))

	return nil
}

func (s DealServer) deleteV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.deals.DeleteByID(ctx, chi.URLParam(r, "id")); err != nil {
		return asFailure(err)
	}

	s.cache.invalidate(ctx)
	reply.OK(w)

	return nil
}

func (s DealServer) postV1DealsPurge(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PurgeDeals
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	keep, err := lox.MapErr(request.KeepStores, value.ParseStore)
	if err != nil {
		return asFailure(domain.WrapError(err, errcodes.InvalidStore, "unknown store in keep list"))
	}

	deleted, err := s.deals.PurgeStoresNotIn(ctx, keep)
	if err != nil {
		return asFailure(err)
	}

	s.cache.invalidate(ctx)
	reply.JSON(ctx, w, http.StatusOK, rest.PurgeResult{Deleted: deleted})

	return nil
}

func (s DealServer) getV1Video(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	video, err := s.settings.GetFeaturedVideo(ctx)
	if err != nil {
		return asFailure(err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTVideo(*video))

	return nil
}

func listFilterFromQuery(r *http.Request) (persistence.ListFilter, error) {
	// Drafts never leave the admin surface.
	filter := persistence.ListFilter{
		Statuses: []value.Status{value.StatusActive, value.StatusExpired},
		Limit:    defaultListLimit,
	}

	query := r.URL.Query()

	if raw := query.Get("store"); raw != "" {
		store, err := value.ParseStore(raw)
		if err != nil {
			return filter, domain.WrapError(err, errcodes.InvalidStore, "unknown store")
		}
		filter.Store = store
	}

	if raw := query.Get("category"); raw != "" {
		category := value.Category(raw)
		if !category.Valid() {
			return filter, domain.NewError(errcodes.ValidationError, fmt.Sprintf("unknown category %q", raw))
		}
		filter.Category = category
	}

	if raw := query.Get("dealType"); raw != "" {
		dealType, err := value.ParseDealType(raw)
		if err != nil {
			return filter, domain.WrapError(err, errcodes.InvalidDealType, "unknown deal type")
		}
		filter.DealType = dealType
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > defaultListLimit {
			return filter, domain.NewError(errcodes.ValidationError, fmt.Sprintf("invalid limit %q", raw))
		}
		filter.Limit = limit
	}

	return filter, nil
}

func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
