package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rs/xid"

	"tooldeals/internal/config"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
	"tooldeals/internal/infrastructure/persistence"
	"tooldeals/pkg/application/connectors"
)

// go run cmd/postglitch/main.go -title "FLEX 24V GLITCH" -store lowes -url https://...
//
// Публикует ручную глюк-сделку напрямую в каталог, минуя сканер.

const defaultImage = "https://placehold.co/600x400/red/white?text=GLITCH+DEAL&font=roboto"

func main() {
	title := flag.String("title", "", "deal title (required)")
	url := flag.String("url", "", "affiliate link (required)")
	store := flag.String("store", "lowes", "store code")
	price := flag.Float64("price", 0, "current price, 0 if it varies")
	originalPrice := flag.Float64("original-price", 0, "list price, 0 if unknown")
	image := flag.String("image", defaultImage, "product image URL")
	dealType := flag.String("deal-type", string(value.DealTypeGlitch), "deal type")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(context.Background(), log, manualDealInput{
		title:         *title,
		url:           *url,
		store:         *store,
		price:         *price,
		originalPrice: *originalPrice,
		image:         *image,
		dealType:      *dealType,
	}); err != nil {
		log.Error("post glitch failed", "error", err)
		os.Exit(1)
	}
}

type manualDealInput struct {
	title         string
	url           string
	store         string
	price         float64
	originalPrice float64
	image         string
	dealType      string
}

func run(ctx context.Context, log *slog.Logger, input manualDealInput) error {
	if input.title == "" || input.url == "" {
		return fmt.Errorf("-title and -url are required")
	}

	store, err := value.ParseStore(input.store)
	if err != nil {
		return fmt.Errorf("value.ParseStore: %w", err)
	}

	dealType, err := value.ParseDealType(input.dealType)
	if err != nil {
		return fmt.Errorf("value.ParseDealType: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.PingContext: %w", err)
	}

	now := time.Now().UTC()
	deal := entity.Deal{
		ID:            entity.ManualIDPrefix + xid.New().String(),
		Title:         input.title,
		Price:         input.price,
		OriginalPrice: input.originalPrice,
		Store:         store,
		Category:      value.CategoryPowerTools,
		DealType:      dealType,
		URL:           input.url,
		Image:         input.image,
		Status:        value.StatusActive,
		Timestamp:     now,
		LastSeen:      now,
		Hot:           true,
	}

	repo := persistence.NewDealRepository(db)
	if err := repo.UpsertBatch(ctx, []entity.Deal{deal}); err != nil {
		return fmt.Errorf("repo.UpsertBatch: %w", err)
	}

	log.Info("glitch is live", "id", deal.ID, "title", deal.Title, "store", deal.Store.String())

	return nil
}
