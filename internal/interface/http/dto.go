package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/pkg/response"
)

// Wire shapes for catalog, ledger and comment payloads. Entities stay free of
// transport tags; the mapping lives here.

// uuidParam validates a route parameter before it reaches a uuid-typed SQL
// parameter. A malformed ID is a validation failure, not a store failure.
func uuidParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if uuid.Validate(v) != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", gin.H{name: "must be a valid uuid"})
		return "", false
	}
	return v, true
}

type productDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CountInStock int       `json:"count_in_stock"`
	Image        string    `json:"image"`
	Categories   []string  `json:"categories"`
	Trailer      string    `json:"trailer,omitempty"`
	Developer    string    `json:"developer,omitempty"`
	ReleaseDate  time.Time `json:"release_date"`
	Platform     string    `json:"platform,omitempty"`
	Ratings      float64   `json:"ratings"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type cartLineDTO struct {
	Product  productDTO `json:"product"`
	Quantity int        `json:"quantity"`
}

type libraryDTO struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Games     []productDTO `json:"games"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type orderDTO struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	OrderItems     []orderItemDTO        `json:"order_items"`
	TotalPrice     float64               `json:"total_price"`
	BillingAddress entity.BillingAddress `json:"billing_address"`
	PaymentMethod  string                `json:"payment_method"`
	IsPaid         bool                  `json:"is_paid"`
	IsDelivered    bool                  `json:"is_delivered"`
	CreatedAt      time.Time             `json:"created_at"`
}

type orderItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type replyDTO struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Likes     int       `json:"likes"`
	Timestamp time.Time `json:"timestamp"`
}

type commentDTO struct {
	ID        string     `json:"id"`
	User      string     `json:"user"`
	UserID    string     `json:"user_id"`
	Text      string     `json:"text"`
	Likes     int        `json:"likes"`
	Timestamp time.Time  `json:"timestamp"`
	Replies   []replyDTO `json:"replies"`
}

func toProductDTO(p entity.Product) productDTO {
	return productDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CountInStock: p.CountInStock,
		Image:        p.Image,
		Categories:   p.Categories,
		Trailer:      p.Trailer,
		Developer:    p.Developer,
		ReleaseDate:  p.ReleaseDate,
		Platform:     p.Platform,
		Ratings:      p.Ratings,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductDTOs(ps []entity.Product) []productDTO {
	out := make([]productDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductDTO(p))
	}
	return out
}

func toCartDTO(lines []entity.CartLine) []cartLineDTO {
	out := make([]cartLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineDTO{Product: toProductDTO(l.Product), Quantity: l.Quantity})
	}
	return out
}

func toLibraryDTO(lib *entity.Library) libraryDTO {
	return libraryDTO{
		ID:        lib.ID,
		UserID:    lib.UserID,
		Games:     toProductDTOs(lib.Games),
		CreatedAt: lib.CreatedAt,
		UpdatedAt: lib.UpdatedAt,
	}
}

func toOrderDTO(o *entity.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return orderDTO{
		ID:             o.ID,
		UserID:         o.UserID,
		OrderItems:     items,
		TotalPrice:     o.TotalPrice,
		BillingAddress: o.BillingAddress,
		PaymentMethod:  o.PaymentInfo.PaymentMethod,
		IsPaid:         o.IsPaid,
		IsDelivered:    o.IsDelivered,
		CreatedAt:      o.CreatedAt,
	}
}

type newsDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Image         string    `json:"image,omitempty"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	PublishedDate time.Time `json:"published_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toNewsDTO(n entity.News) newsDTO {
	return newsDTO{
		ID:            n.ID,
		Title:         n.Title,
		Image:         n.Image,
		Author:        n.Author,
		Description:   n.Description,
		Content:       n.Content,
		Category:      n.Category,
		PublishedDate: n.PublishedDate,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func toNewsDTOs(ns []entity.News) []newsDTO {
	out := make([]newsDTO, 0, len(ns))
	for _, n := range ns {
		out = append(out, toNewsDTO(n))
	}
	return out
}

func toReplyDTO(r entity.Reply) replyDTO {
	return replyDTO{
		ID:        r.ID,
		User:      r.UserName,
		UserID:    r.UserID,
		Text:      r.Text,
		Likes:     r.Likes,
		Timestamp: r.Timestamp,
	}
}

func toCommentDTO(c entity.Comment) commentDTO {
	replies := make([]replyDTO, 0, len(c.Replies))
	for _, r := range c.Replies {
		replies = append(replies, toReplyDTO(r))
	}
	return commentDTO{
		ID:        c.ID,
		User:      c.UserName,
		UserID:    c.UserID,
		Text:      c.Text,
		Likes:     c.Likes,
		Timestamp: c.Timestamp,
		Replies:   replies,
	}
}

func toCommentDTOs(cs []entity.Comment) []commentDTO {
	out := make([]commentDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCommentDTO(c))
	}
	return out
}
