package httphandler

import "github.com/vastrakart/assistant/internal/core/domain"

type Product struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Brand    string   `json:"brand"`
	Color    string   `json:"color"`
	Material string   `json:"material"`
	Category string   `json:"category"`
	Gender   string   `json:"gender"`
	Price    int      `json:"price"`
	Size     []string `json:"size"`
	Rating   float64  `json:"rating"`
	Delivery string   `json:"delivery"`
	Image    string   `json:"image"`
	Link     string   `json:"link"`
}

type FilterSet struct {
	Category string `json:"category,omitempty"`
	Color    string `json:"color,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Material string `json:"material,omitempty"`
	Gender   string `json:"gender,omitempty"`
	MinPrice *int   `json:"minPrice,omitempty"`
	MaxPrice *int   `json:"maxPrice,omitempty"`
}

type Preferences struct {
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
	Saved    []string `json:"saved"`
}

type (
	ChatRequest struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}

	ChatResponse struct {
		Type     string    `json:"type"`
		Content  string    `json:"content"`
		Products []Product `json:"products,omitempty"`
	}

	SearchRequest struct {
		Query  string `json:"query"`
		UserID string `json:"userId"`
	}

	SearchResponse struct {
		Products []Product `json:"products"`
		Filters  FilterSet `json:"filters"`
		FollowUp string    `json:"followUp"`
	}

	PreferenceRequest struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
		Action    string `json:"action"`
	}

	PreferenceResponse struct {
		Success     bool        `json:"success"`
		Preferences Preferences `json:"preferences"`
	}

	WishlistResponse struct {
		Products []Product `json:"products"`
	}

	CreateOrderRequest struct {
		Amount   int    `json:"amount"`
		Currency string `json:"currency"`
	}

	CreateOrderResponse struct {
		OrderID  string `json:"orderId"`
		Amount   int    `json:"amount"`
		Currency string `json:"currency"`
		Mock     bool   `json:"mock,omitempty"`
	}

	VerifyPaymentRequest struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	}

	VerifyPaymentResponse struct {
		Success  bool `json:"success"`
		Verified bool `json:"verified"`
	}
)

func fromDomainProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, Product{
			ID:       p.ID,
			Title:    p.Title,
			Brand:    p.Brand,
			Color:    p.Color,
			Material: p.Material,
			Category: p.Category,
			Gender:   p.Gender,
			Price:    p.Price,
			Size:     p.Size,
			Rating:   p.Rating,
			Delivery: p.Delivery,
			Image:    p.Image,
			Link:     p.Link,
		})
	}
	return out
}

func fromDomainFilters(f domain.FilterSet) FilterSet {
	return FilterSet{
		Category: f.Category,
		Color:    f.Color,
		Brand:    f.Brand,
		Material: f.Material,
		Gender:   f.Gender,
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
	}
}

func fromDomainPreferences(p domain.UserPreferences) Preferences {
	return Preferences{
		Liked:    p.Liked,
		Disliked: p.Disliked,
		Saved:    p.Saved,
	}
}
