package cart

import (
	"context"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/google/uuid"
)

// DefaultShippingFee is the flat shipping charge, in thousand-VND units,
// applied to any non-empty cart.
const DefaultShippingFee int64 = 30

type cartStore interface {
	SetCartItem(ctx context.Context, userID uuid.UUID, product appstate.Product, quantity int) error
	DeleteCartItem(ctx context.Context, userID uuid.UUID, productID string) error
	GetAllCartItems(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error)
	IncreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) (int, error)
	DecreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) (int, error)
}

// Totals is the priced view of a cart: entry subtotal, shipping, and the
// grand total, all in thousand-VND units.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// Service exposes cart mutations over the per-user store. Every mutation
// reloads the cart sub-tree afterwards so the session copy is read-after-write
// consistent.
type Service interface {
	ToggleCart(ctx context.Context, userID uuid.UUID, productID string) (bool, []appstate.Product, error)
	IncreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) ([]appstate.Product, error)
	DecreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) ([]appstate.Product, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) ([]appstate.Product, error)
	Reload(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error)
	ShippingFee() int64
}

type service struct {
	store       cartStore
	states      *appstate.Registry
	shippingFee int64
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store       cartStore
	States      *appstate.Registry
	ShippingFee int64
}

// NewService builds the cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.States == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state registry is required")
	}
	fee := params.ShippingFee
	if fee <= 0 {
		fee = DefaultShippingFee
	}
	return &service{
		store:       params.Store,
		states:      params.States,
		shippingFee: fee,
	}, nil
}

// ToggleCart adds the product when it is not in the cart. Out-of-stock
// products are rejected before any flip, even toggling off. Toggling an
// in-cart product only clears the session flag; the stored line survives
// until RemoveItem.
func (s *service) ToggleCart(ctx context.Context, userID uuid.UUID, productID string) (bool, []appstate.Product, error) {
	state, err := s.states.Get(userID)
	if err != nil {
		return false, nil, err
	}

	product, ok := state.Product(productID)
	if !ok {
		return false, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the current session")
	}

	if product.Stock < 1 {
		return false, nil, pkgerrors.New(pkgerrors.CodeOutOfStock, "product is out of stock")
	}

	if product.IsInCart {
		state.SetInCartFlag(productID, false, 1)
		return false, state.Cart(), nil
	}

	if err := s.store.SetCartItem(ctx, userID, product, 1); err != nil {
		return false, nil, err
	}
	state.SetInCartFlag(productID, true, 1)

	items, err := s.reload(ctx, userID, state)
	if err != nil {
		return true, nil, err
	}
	return true, items, nil
}

// IncreaseQuantity raises the line counter atomically and reloads the cart.
func (s *service) IncreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) ([]appstate.Product, error) {
	state, err := s.states.Get(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.IncreaseQuantity(ctx, userID, productID, delta); err != nil {
		return nil, err
	}
	return s.reload(ctx, userID, state)
}

// DecreaseQuantity lowers the line counter atomically; reaching zero removes
// the line. The cart is reloaded either way.
func (s *service) DecreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) ([]appstate.Product, error) {
	state, err := s.states.Get(userID)
	if err != nil {
		return nil, err
	}
	remaining, err := s.store.DecreaseQuantity(ctx, userID, productID, delta)
	if err != nil {
		return nil, err
	}
	if remaining == 0 {
		state.SetInCartFlag(productID, false, 1)
	}
	return s.reload(ctx, userID, state)
}

// RemoveItem deletes the line when the session cart holds it. Removing an
// absent line is a no-op, not an error.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) ([]appstate.Product, error) {
	state, err := s.states.Get(userID)
	if err != nil {
		return nil, err
	}
	if _, ok := state.CartItem(productID); ok {
		if err := s.store.DeleteCartItem(ctx, userID, productID); err != nil {
			return nil, err
		}
		state.SetInCartFlag(productID, false, 1)
	}
	return s.reload(ctx, userID, state)
}

// Reload re-fetches the cart sub-tree and replaces the session copy.
func (s *service) Reload(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error) {
	state := s.states.GetOrCreate(userID)
	return s.reload(ctx, userID, state)
}

// ShippingFee returns the configured flat shipping charge.
func (s *service) ShippingFee() int64 {
	return s.shippingFee
}

func (s *service) reload(ctx context.Context, userID uuid.UUID, state *appstate.State) ([]appstate.Product, error) {
	items, err := s.store.GetAllCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.ReplaceCart(items)
	for _, item := range items {
		state.SetInCartFlag(item.ID, true, item.Quantity)
	}
	return state.Cart(), nil
}

// ComputeTotal prices the cart: sum of price times quantity per line, plus the
// shipping fee when the cart is non-empty. Pure integer arithmetic in
// thousand-VND units.
func ComputeTotal(entries []appstate.Product, shippingFee int64) Totals {
	if len(entries) == 0 {
		return Totals{}
	}
	var subtotal int64
	for _, entry := range entries {
		qty := int64(entry.Quantity)
		if qty < 1 {
			qty = 1
		}
		subtotal += entry.Price * qty
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shippingFee,
		Total:    subtotal + shippingFee,
	}
}
