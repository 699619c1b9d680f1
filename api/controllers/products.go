package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HoaDang0803/ShineOn/api/middleware"
	"github.com/HoaDang0803/ShineOn/api/responses"
	"github.com/HoaDang0803/ShineOn/api/validators"
	catalogsvc "github.com/HoaDang0803/ShineOn/internal/catalog"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/HoaDang0803/ShineOn/pkg/logger"
)

const maxQueryLen = 120

// ProductList loads the catalog, optionally filtered by brand or title, and
// reconciles the wishlist so favorite flags survive a reload.
func ProductList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		filter := catalogsvc.Filter{
			Brand: validators.ParseQueryString(r, "brand", maxQueryLen),
			Title: validators.ParseQueryString(r, "title", maxQueryLen),
		}

		products, err := svc.LoadCatalog(r.Context(), userID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err = svc.ReconcileFavorites(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductGet returns a single product with the caller's session flags applied.
func ProductGet(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.RequirePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		product, err := svc.GetProduct(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// BrandList returns the distinct brand names offered by the catalog.
func BrandList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brands)
	}
}

type toggleFavoriteResponse struct {
	ProductID  string `json:"product_id"`
	IsFavorite bool   `json:"is_favorite"`
}

// ToggleFavorite flips the favorite state of a product. The remote write
// happens before the session copy changes, so a failed write leaves the
// flag untouched.
func ToggleFavorite(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.RequirePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		isFavorite, err := svc.ToggleFavorite(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toggleFavoriteResponse{ProductID: id, IsFavorite: isFavorite})
	}
}
