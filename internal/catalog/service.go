package catalog

import (
	"context"
	"strings"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/google/uuid"
)

// Filter narrows a catalog load to one brand or one title search. Zero value
// loads the full catalog.
type Filter struct {
	Brand string
	Title string
}

type gateway interface {
	List(ctx context.Context) ([]appstate.Product, error)
	ListByBrand(ctx context.Context, brand string) ([]appstate.Product, error)
	ListByTitle(ctx context.Context, title string) ([]appstate.Product, error)
	GetByID(ctx context.Context, id string) (*appstate.Product, error)
	Brands(ctx context.Context) ([]string, error)
}

type favoritesStore interface {
	SetFavorite(ctx context.Context, userID uuid.UUID, product appstate.Product) error
	DeleteFavorite(ctx context.Context, userID uuid.UUID, productID string) error
	GetAllFavorites(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error)
}

// Service exposes the session product list and favorite reconciliation.
type Service interface {
	LoadCatalog(ctx context.Context, userID uuid.UUID, filter Filter) ([]appstate.Product, error)
	ReconcileFavorites(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error)
	ToggleFavorite(ctx context.Context, userID uuid.UUID, productID string) (bool, error)
	GetProduct(ctx context.Context, userID uuid.UUID, productID string) (*appstate.Product, error)
	ListBrands(ctx context.Context) ([]string, error)
}

type service struct {
	gateway   gateway
	favorites favoritesStore
	states    *appstate.Registry
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Gateway   gateway
	Favorites favoritesStore
	States    *appstate.Registry
}

// NewService builds the catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog gateway is required")
	}
	if params.Favorites == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites store is required")
	}
	if params.States == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state registry is required")
	}
	return &service{
		gateway:   params.Gateway,
		favorites: params.Favorites,
		states:    params.States,
	}, nil
}

// LoadCatalog fetches the (optionally filtered) product list and replaces the
// session copy with all derived flags reset. On failure the prior session list
// is left untouched.
func (s *service) LoadCatalog(ctx context.Context, userID uuid.UUID, filter Filter) ([]appstate.Product, error) {
	var (
		products []appstate.Product
		err      error
	)
	switch {
	case strings.TrimSpace(filter.Brand) != "":
		products, err = s.gateway.ListByBrand(ctx, filter.Brand)
	case strings.TrimSpace(filter.Title) != "":
		products, err = s.gateway.ListByTitle(ctx, filter.Title)
	default:
		products, err = s.gateway.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].IsFavorite = false
		products[i].IsInCart = false
		products[i].Quantity = 1
	}

	state := s.states.GetOrCreate(userID)
	state.ReplaceProducts(products)
	return state.Products(), nil
}

// ReconcileFavorites marks session products present in the stored favorites.
// The pass is additive: products favorited in another session and since
// removed are only cleared by the next full load.
func (s *service) ReconcileFavorites(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error) {
	favorites, err := s.favorites.GetAllFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := s.states.GetOrCreate(userID)
	for _, fav := range favorites {
		state.SetFavoriteFlag(fav.ID, true)
	}
	return state.Products(), nil
}

// ToggleFavorite flips the favorite flag for a loaded product. The remote
// snapshot is written first; the session flag commits only after that write
// succeeds.
func (s *service) ToggleFavorite(ctx context.Context, userID uuid.UUID, productID string) (bool, error) {
	state, err := s.states.Get(userID)
	if err != nil {
		return false, err
	}

	product, ok := s.findProduct(state, productID)
	if !ok {
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the current session")
	}

	next := !product.IsFavorite
	if next {
		snapshot := product
		snapshot.IsFavorite = true
		if err := s.favorites.SetFavorite(ctx, userID, snapshot); err != nil {
			return false, err
		}
	} else {
		if err := s.favorites.DeleteFavorite(ctx, userID, productID); err != nil {
			return false, err
		}
	}

	state.SetFavoriteFlag(productID, next)
	return next, nil
}

// GetProduct returns the catalog product with the session flags overlaid when
// the product is part of the current session.
func (s *service) GetProduct(ctx context.Context, userID uuid.UUID, productID string) (*appstate.Product, error) {
	product, err := s.gateway.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	state, stateErr := s.states.Get(userID)
	if stateErr == nil {
		if local, ok := s.findProduct(state, productID); ok {
			product.IsFavorite = local.IsFavorite
			product.IsInCart = local.IsInCart
			product.Quantity = local.Quantity
		}
	}
	if product.Quantity < 1 {
		product.Quantity = 1
	}
	return product, nil
}

// ListBrands is a pass-through to the catalog brand list.
func (s *service) ListBrands(ctx context.Context) ([]string, error) {
	return s.gateway.Brands(ctx)
}

// findProduct checks the session product list first, then the wishlist, so a
// favorite can be toggled off from the wishlist screen after a filtered load.
func (s *service) findProduct(state *appstate.State, productID string) (appstate.Product, bool) {
	if product, ok := state.Product(productID); ok {
		return product, true
	}
	for _, item := range state.Wishlist() {
		if item.ID == productID {
			return item, true
		}
	}
	return appstate.Product{}, false
}
