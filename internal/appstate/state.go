package appstate

import "sync"

// State is the per-user application state: the session's product list, cart
// lines, and wishlist. All three are derived copies of remote data and may go
// stale; aggregators replace them wholesale after each reconciliation or
// mutation. All accessors copy, so callers never alias internal slices.
type State struct {
	mu       sync.RWMutex
	products []Product
	cart     []Product
	wishlist []Product
}

// Products returns a copy of the session product list.
func (s *State) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProducts(s.products)
}

// ReplaceProducts swaps the session product list.
func (s *State) ReplaceProducts(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = copyProducts(products)
}

// Cart returns a copy of the session cart lines.
func (s *State) Cart() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProducts(s.cart)
}

// ReplaceCart swaps the session cart lines.
func (s *State) ReplaceCart(items []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = copyProducts(items)
}

// Wishlist returns a copy of the session wishlist.
func (s *State) Wishlist() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProducts(s.wishlist)
}

// ReplaceWishlist swaps the session wishlist.
func (s *State) ReplaceWishlist(items []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = copyProducts(items)
}

// Product looks up a session product by id.
func (s *State) Product(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// CartItem looks up a session cart line by product id.
func (s *State) CartItem(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.cart {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// SetFavoriteFlag updates the favorite flag on the matching session product.
// Missing ids are ignored: the product may belong to a filter the session has
// since navigated away from.
func (s *State) SetFavoriteFlag(id string, favorite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].IsFavorite = favorite
		}
	}
}

// SetInCartFlag updates the cart flag and quantity on the matching session product.
func (s *State) SetInCartFlag(id string, inCart bool, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].IsInCart = inCart
			s.products[i].Quantity = quantity
		}
	}
}

func copyProducts(src []Product) []Product {
	if src == nil {
		return nil
	}
	out := make([]Product, len(src))
	copy(out, src)
	return out
}
