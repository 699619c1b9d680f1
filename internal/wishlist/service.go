package wishlist

import (
	"context"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/google/uuid"
)

type favoritesStore interface {
	GetAllFavorites(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error)
	DeleteFavorite(ctx context.Context, userID uuid.UUID, productID string) error
}

type cartWriter interface {
	SetCartItem(ctx context.Context, userID uuid.UUID, product appstate.Product, quantity int) error
}

// Service exposes the wishlist view over the stored favorites.
type Service interface {
	Load(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error)
	AddToCart(ctx context.Context, userID uuid.UUID, productID string) ([]appstate.Product, error)
	Remove(ctx context.Context, userID uuid.UUID, productID string) ([]appstate.Product, error)
}

type service struct {
	favorites favoritesStore
	cart      cartWriter
	states    *appstate.Registry
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Favorites favoritesStore
	Cart      cartWriter
	States    *appstate.Registry
}

// NewService builds the wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Favorites == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites store is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart writer is required")
	}
	if params.States == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state registry is required")
	}
	return &service{
		favorites: params.Favorites,
		cart:      params.Cart,
		states:    params.States,
	}, nil
}

// Load fetches all stored favorites and replaces the session wishlist.
func (s *service) Load(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error) {
	items, err := s.favorites.GetAllFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	state := s.states.GetOrCreate(userID)
	state.ReplaceWishlist(items)
	return state.Wishlist(), nil
}

// AddToCart upserts a wishlist product into the cart with quantity one. The
// wishlist entry stays: favorites and cart are independent sets. Out-of-stock
// products are rejected before any write.
func (s *service) AddToCart(ctx context.Context, userID uuid.UUID, productID string) ([]appstate.Product, error) {
	state, err := s.states.Get(userID)
	if err != nil {
		return nil, err
	}

	var product *appstate.Product
	for _, item := range state.Wishlist() {
		if item.ID == productID {
			found := item
			product = &found
			break
		}
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not on the wishlist")
	}

	if product.Stock < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, "product is out of stock")
	}

	if err := s.cart.SetCartItem(ctx, userID, *product, 1); err != nil {
		return nil, err
	}
	state.SetInCartFlag(productID, true, 1)
	return state.Wishlist(), nil
}

// Remove deletes the favorite and reloads the wishlist. The session product
// flag is cleared only after the remote delete succeeds.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, productID string) ([]appstate.Product, error) {
	state, err := s.states.Get(userID)
	if err != nil {
		return nil, err
	}

	if err := s.favorites.DeleteFavorite(ctx, userID, productID); err != nil {
		return nil, err
	}
	state.SetFavoriteFlag(productID, false)

	items, err := s.favorites.GetAllFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.ReplaceWishlist(items)
	return state.Wishlist(), nil
}
