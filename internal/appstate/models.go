package appstate

// Product is the per-session view of a catalog product. Catalog attributes are
// immutable after fetch; IsFavorite, IsInCart, and Quantity are derived local
// state reconciled against the user store.
type Product struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Brand                string   `json:"brand"`
	Category             string   `json:"category"`
	Price                int64    `json:"price"`
	DiscountPercentage   float64  `json:"discountPercentage"`
	Rating               float64  `json:"rating"`
	Stock                int      `json:"stock"`
	Tags                 []string `json:"tags"`
	SKU                  string   `json:"sku"`
	Weight               int      `json:"weight"`
	WarrantyInformation  string   `json:"warrantyInformation"`
	ShippingInformation  string   `json:"shippingInformation"`
	AvailabilityStatus   string   `json:"availabilityStatus"`
	Reviews              []Review `json:"reviews,omitempty"`
	ReturnPolicy         string   `json:"returnPolicy"`
	MinimumOrderQuantity int      `json:"minimumOrderQuantity"`
	Thumbnail            string   `json:"thumbnail"`
	Images               []string `json:"images"`

	IsFavorite bool `json:"isFavorite"`
	IsInCart   bool `json:"isInCart"`
	Quantity   int  `json:"quantity"`
}

// Review is a catalog product review.
type Review struct {
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	Date          string `json:"date"`
	ReviewerName  string `json:"reviewerName"`
	ReviewerEmail string `json:"reviewerEmail"`
}

// Profile is the user-editable account document. Saves overwrite the whole
// document; there is no partial merge.
type Profile struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	ImageURL string `json:"imageUrl"`
}
