package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"tooldeals/internal/config"
	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/service/classify"
	"tooldeals/internal/domain/service/deal"
	"tooldeals/internal/infrastructure/sources"
	"tooldeals/pkg/errcodes"
	"tooldeals/pkg/logx"
)

type DealRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	UpsertBatch(ctx context.Context, deals []entity.Deal) error
	ListActiveBefore(ctx context.Context, cutoff time.Time) ([]entity.Deal, error)
	ExpireBatch(ctx context.Context, ids []string) error
}

// DealScanner walks every source once per cycle, reconciles what it finds
// and expires what it has stopped finding. Sources run sequentially, so one
// pass observes each deal id at most a handful of times and never
// concurrently.
type DealScanner struct {
	engine        *deal.Engine
	repo          DealRepository
	sources       []sources.Source
	keywords      []config.Keyword
	notifications chan<- deal.Notification

	sourceTimeout   time.Duration
	retentionWindow time.Duration

	// seen dedupes deal ids within one cycle: the same item showing up for
	// two keywords must not be reconciled twice against the same snapshot.
	seen        *cache.Cache
	lastRequest map[string]time.Time
}

func NewDealScanner(
	engine *deal.Engine,
	repo DealRepository,
	srcs []sources.Source,
	cfg config.Scanner,
	notifications chan<- deal.Notification,
) *DealScanner {
	return &DealScanner{
		engine:          engine,
		repo:            repo,
		sources:         srcs,
		keywords:        cfg.SearchKeywords(),
		notifications:   notifications,
		sourceTimeout:   cfg.SourceTimeout,
		retentionWindow: cfg.RetentionWindow,
		seen:            cache.New(cfg.SourceTimeout, 2*cfg.SourceTimeout),
		lastRequest:     make(map[string]time.Time),
	}
}

// ScanCycle runs one full pass: every source, then the expiry sweep. A
// failing source costs only its own listings; everything else still lands.
func (w *DealScanner) ScanCycle(ctx context.Context) error {
	w.seen.Flush()

	for _, src := range w.sources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		w.scanSource(ctx, src)
	}

	return w.sweep(ctx)
}

func (w *DealScanner) scanSource(ctx context.Context, src sources.Source) {
	ctx, cancel := context.WithTimeout(ctx, w.sourceTimeout)
	defer cancel()

	log := logger(ctx).With(slog.String(logx.FieldSource, src.Tag()))

	batch := make([]entity.Deal, 0, 64)

	for _, keyword := range w.keywords {
		if !w.relevant(keyword, src) {
			continue
		}

		if err := w.waitForNextSlot(ctx, src); err != nil {
			return
		}

		listings, err := src.Search(ctx, keyword.Term)
		if err != nil {
			metricSourceFailures.WithLabelValues(src.Tag()).Inc()
			log.Error("search failed", slog.String(logx.FieldKeyword, keyword.Term), logx.Error(err))
			continue
		}

		for _, listing := range listings {
			if next, ok := w.reconcileOne(ctx, log, src, listing); ok {
				batch = append(batch, next)
			}
		}
	}

	if err := w.repo.UpsertBatch(ctx, batch); err != nil {
		log.Error("failed to commit batch", slog.Int("size", len(batch)), logx.Error(err))
		return
	}

	log.Info("source pass done", slog.Int("deals", len(batch)))
}

func (w *DealScanner) reconcileOne(ctx context.Context, log *slog.Logger, src sources.Source, listing entity.Listing) (entity.Deal, bool) {
	// Sources that carry explicit tags (a scraped glitch feed, say) keep
	// them; everything else is classified from its text.
	if listing.DealType == "" {
		listing.DealType = classify.DealType(listing.Title, listing.Description)
	}
	if listing.Category == "" {
		listing.Category = classify.Category(listing.Title)
	}

	if !w.engine.Eligible(listing) {
		metricListingsRejected.WithLabelValues(src.Tag(), "discount").Inc()
		return entity.Deal{}, false
	}

	id := listing.DealID()
	if _, dup := w.seen.Get(id); dup {
		metricListingsRejected.WithLabelValues(src.Tag(), "duplicate").Inc()
		return entity.Deal{}, false
	}
	w.seen.SetDefault(id, struct{}{})

	existing, err := w.repo.GetByID(ctx, id)
	if err != nil && !domain.HasCode(err, errcodes.DealNotFound) {
		log.Error("failed to load deal", slog.String(logx.FieldDealID, id), logx.Error(err))
		return entity.Deal{}, false
	}

	next, notification, err := w.engine.Reconcile(listing, existing, time.Now())
	if err != nil {
		metricListingsRejected.WithLabelValues(src.Tag(), "malformed").Inc()
		log.Warn("rejected candidate", slog.String(logx.FieldDealID, id), logx.Error(err))
		return entity.Deal{}, false
	}

	if notification != nil {
		w.notify(log, *notification)
	}

	metricListingsIngested.WithLabelValues(src.Tag()).Inc()

	return next, true
}

// notify hands the alert to the dispatcher without ever stalling the scan.
// A full channel drops the alert; the deal itself is already in the batch.
func (w *DealScanner) notify(log *slog.Logger, notification deal.Notification) {
	select {
	case w.notifications <- notification:
		metricGlitchAlerts.Inc()
	default:
		log.Warn(
			"notification channel full, dropping alert",
			slog.String(logx.FieldDealID, notification.Deal.ID),
		)
	}
}

func (w *DealScanner) sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-w.retentionWindow)

	stale, err := w.repo.ListActiveBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	ids := w.engine.Sweep(cutoff, stale)
	if len(ids) == 0 {
		return nil
	}

	if err := w.repo.ExpireBatch(ctx, ids); err != nil {
		return err
	}

	metricDealsExpired.Add(float64(len(ids)))
	logger(ctx).Info("expired stale deals", slog.Int("count", len(ids)))

	return nil
}

func (w *DealScanner) relevant(keyword config.Keyword, src sources.Source) bool {
	for _, store := range src.Stores() {
		if keyword.Matches(string(store)) {
			return true
		}
	}

	return false
}

func (w *DealScanner) waitForNextSlot(ctx context.Context, src sources.Source) error {
	last, ok := w.lastRequest[src.Tag()]
	if !ok || time.Since(last) >= src.RateDelay() {
		w.lastRequest[src.Tag()] = time.Now()
		return nil
	}

	wait := src.RateDelay() - time.Since(last)

	select {
	case <-time.After(wait):
		w.lastRequest[src.Tag()] = time.Now()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
