package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HoaDang0803/ShineOn/api/middleware"
	"github.com/HoaDang0803/ShineOn/api/responses"
	"github.com/HoaDang0803/ShineOn/api/validators"
	"github.com/HoaDang0803/ShineOn/internal/appstate"
	cartsvc "github.com/HoaDang0803/ShineOn/internal/cart"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/HoaDang0803/ShineOn/pkg/logger"
	"github.com/HoaDang0803/ShineOn/pkg/money"
)

type cartResponse struct {
	Items          []appstate.Product `json:"items"`
	Totals         cartsvc.Totals     `json:"totals"`
	TotalFormatted string             `json:"total_formatted"`
}

func newCartResponse(items []appstate.Product, fee int64) cartResponse {
	totals := cartsvc.ComputeTotal(items, fee)
	return cartResponse{
		Items:          items,
		Totals:         totals,
		TotalFormatted: money.FormatVND(totals.Total),
	}
}

// CartGet returns the priced cart for the caller.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		items, err := svc.Reload(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(items, svc.ShippingFee()))
	}
}

type toggleCartRequest struct {
	ID string `json:"id" validate:"required"`
}

type toggleCartResponse struct {
	ProductID string `json:"product_id"`
	InCart    bool   `json:"in_cart"`
	cartResponse
}

// CartToggle adds the product to the cart when it is not there yet. Toggling
// an item that is already in the cart only clears the session flag; the line
// stays until an explicit remove.
func CartToggle(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload toggleCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id := payload.ID

		userID := middleware.UserUUIDFromContext(r.Context())
		inCart, items, err := svc.ToggleCart(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toggleCartResponse{
			ProductID:    id,
			InCart:       inCart,
			cartResponse: newCartResponse(items, svc.ShippingFee()),
		})
	}
}

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartIncrease bumps a line quantity by the requested amount.
func CartIncrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quantityHandler(svc, logg, func(r *http.Request, svc cartsvc.Service, id string, delta int) ([]appstate.Product, error) {
		return svc.IncreaseQuantity(r.Context(), middleware.UserUUIDFromContext(r.Context()), id, delta)
	})
}

// CartDecrease lowers a line quantity, deleting the line when it reaches zero.
func CartDecrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quantityHandler(svc, logg, func(r *http.Request, svc cartsvc.Service, id string, delta int) ([]appstate.Product, error) {
		return svc.DecreaseQuantity(r.Context(), middleware.UserUUIDFromContext(r.Context()), id, delta)
	})
}

func quantityHandler(svc cartsvc.Service, logg *logger.Logger, apply func(*http.Request, cartsvc.Service, string, int) ([]appstate.Product, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		id, err := validators.RequirePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := apply(r, svc, id, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(items, svc.ShippingFee()))
	}
}

// CartRemove deletes a cart line outright.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		id, err := validators.RequirePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		items, err := svc.RemoveItem(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(items, svc.ShippingFee()))
	}
}
