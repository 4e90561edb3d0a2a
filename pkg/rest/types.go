// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

type Deal struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	DiscountPct   float64 `json:"discountPct"`
	URL           string  `json:"url"`
	Image         string  `json:"image"`
	Store         string  `json:"store"`
	Category      string  `json:"category"`
	DealType      string  `json:"dealType"`
	Status        string  `json:"status"`
	Hot           bool    `json:"hot"`
	Timestamp     int64   `json:"timestamp"`
	LastSeen      int64   `json:"lastSeen"`
}

type NewDeal struct {
	Title         string  `json:"title" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	OriginalPrice float64 `json:"originalPrice" validate:"gte=0"`
	URL           string  `json:"url" validate:"required,url"`
	Image         string  `json:"image" validate:"omitempty,url"`
	Store         string  `json:"store" validate:"required"`
	Category      string  `json:"category"`
	DealType      string  `json:"dealType" validate:"required"`
}

type PublishDeal struct {
	URL           string  `json:"url" validate:"required,url"`
	Image         string  `json:"image" validate:"omitempty,url"`
	Price         float64 `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice float64 `json:"originalPrice" validate:"omitempty,gte=0"`
}

type PurgeDeals struct {
	KeepStores []string `json:"keepStores" validate:"required,min=1"`
}

type PurgeResult struct {
	Deleted int64 `json:"deleted"`
}

type FeaturedVideo struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	UpdatedAt int64  `json:"updatedAt"`
}

type Subscriber struct {
	Email string `json:"email" validate:"required,email"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
