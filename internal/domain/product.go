package domain

// KeyPrefix namespaces every key this service writes to the store.
const KeyPrefix = "prodsearch:"

// Product is a catalog item as stored and returned by the product store.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand,omitempty"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating,omitempty"`
	Stock       int      `json:"stock,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
}

// Category is an entry of the canonical category master list.
type Category struct {
	ID          string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
