package server

import (
	"fmt"
	"time"

	"github.com/rs/xid"

	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/service/classify"
	"tooldeals/internal/domain/value"
	"tooldeals/pkg/errcodes"
	"tooldeals/pkg/rest"
)

func newRESTDeal(deal entity.Deal) rest.Deal {
	return rest.Deal{
		ID:            deal.ID,
		Title:         deal.Title,
		Price:         deal.Price,
		OriginalPrice: deal.OriginalPrice,
		DiscountPct:   deal.DiscountPct(),
		URL:           deal.URL,
		Image:         deal.Image,
		Store:         deal.Store.String(),
		Category:      deal.Category.String(),
		DealType:      deal.DealType.String(),
		Status:        deal.Status.String(),
		Hot:           deal.Hot,
		Timestamp:     deal.Timestamp.UnixMilli(),
		LastSeen:      deal.LastSeen.UnixMilli(),
	}
}

func newRESTVideo(video entity.FeaturedVideo) rest.FeaturedVideo {
	return rest.FeaturedVideo{
		VideoID:   video.VideoID,
		Title:     video.Title,
		UpdatedAt: video.UpdatedAt.UnixMilli(),
	}
}

// newManualDeal builds an admin-posted deal. Manual ids get the reserved
// prefix so the expiry sweep leaves them alone.
func newManualDeal(request rest.NewDeal, now time.Time) (entity.Deal, error) {
	store, err := value.ParseStore(request.Store)
	if err != nil {
		return entity.Deal{}, domain.WrapError(err, errcodes.InvalidStore, "unknown store")
	}

	dealType, err := value.ParseDealType(request.DealType)
	if err != nil {
		return entity.Deal{}, domain.WrapError(err, errcodes.InvalidDealType, "unknown deal type")
	}

	category := value.Category(request.Category)
	if request.Category == "" {
		category = classify.Category(request.Title)
	} else if !category.Valid() {
		return entity.Deal{}, domain.NewError(errcodes.ValidationError,
			fmt.Sprintf("unknown category %q", request.Category))
	}

	originalPrice := request.OriginalPrice
	if originalPrice <= 0 {
		originalPrice = request.Price
	}

	return entity.Deal{
		ID:            entity.ManualIDPrefix + xid.New().String(),
		Title:         request.Title,
		URL:           request.URL,
		Image:         request.Image,
		Price:         request.Price,
		OriginalPrice: originalPrice,
		Store:         store,
		Category:      category,
		DealType:      dealType,
		Status:        value.StatusActive,
		Timestamp:     now,
		LastSeen:      now,
		Hot:           true,
	}, nil
}
