package persistence

import (
	"time"

	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
)

// dealSchema — внутренняя структура для маппинга строки БД.
type dealSchema struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	URL           string    `db:"url"`
	Image         string    `db:"image"`
	Price         float64   `db:"price"`
	OriginalPrice float64   `db:"original_price"`
	Store         string    `db:"store"`
	Category      string    `db:"category"`
	DealType      string    `db:"deal_type"`
	Status        string    `db:"status"`
	Timestamp     time.Time `db:"timestamp"`
	LastSeen      time.Time `db:"last_seen"`
	Hot           bool      `db:"hot"`
}

func fromDeal(e entity.Deal) dealSchema {
	return dealSchema{
		ID:            e.ID,
		Title:         e.Title,
		URL:           e.URL,
		Image:         e.Image,
		Price:         e.Price,
		OriginalPrice: e.OriginalPrice,
		Store:         string(e.Store),
		Category:      string(e.Category),
		DealType:      string(e.DealType),
		Status:        string(e.Status),
		Timestamp:     e.Timestamp,
		LastSeen:      e.LastSeen,
		Hot:           e.Hot,
	}
}

func (s dealSchema) toDomain() entity.Deal {
	return entity.Deal{
		ID:            s.ID,
		Title:         s.Title,
		URL:           s.URL,
		Image:         s.Image,
		Price:         s.Price,
		OriginalPrice: s.OriginalPrice,
		Store:         value.Store(s.Store),
		Category:      value.Category(s.Category),
		DealType:      value.DealType(s.DealType),
		Status:        value.Status(s.Status),
		Timestamp:     s.Timestamp,
		LastSeen:      s.LastSeen,
		Hot:           s.Hot,
	}
}

type subscriberSchema struct {
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

func (s subscriberSchema) toDomain() entity.Subscriber {
	return entity.Subscriber{Email: s.Email, CreatedAt: s.CreatedAt}
}

type featuredVideoSchema struct {
	VideoID   string    `db:"video_id"`
	Title     string    `db:"title"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s featuredVideoSchema) toDomain() entity.FeaturedVideo {
	return entity.FeaturedVideo{VideoID: s.VideoID, Title: s.Title, UpdatedAt: s.UpdatedAt}
}
