package controllers

import (
	"net/http"

	"github.com/HoaDang0803/ShineOn/api/middleware"
	"github.com/HoaDang0803/ShineOn/api/responses"
	"github.com/HoaDang0803/ShineOn/api/validators"
	"github.com/HoaDang0803/ShineOn/internal/appstate"
	profilesvc "github.com/HoaDang0803/ShineOn/internal/profile"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/HoaDang0803/ShineOn/pkg/logger"
)

type profileRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	ImageURL string `json:"image_url"`
}

// ProfileGet returns the stored contact card, or an empty object when the
// user has not saved one yet.
func ProfileGet(svc profilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		profile, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if profile == nil {
			profile = &appstate.Profile{}
		}

		responses.WriteSuccess(w, profile)
	}
}

// ProfileSave overwrites the whole contact card.
func ProfileSave(svc profilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		var payload profileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile := appstate.Profile{
			Name:     payload.Name,
			Surname:  payload.Surname,
			Email:    payload.Email,
			Phone:    payload.Phone,
			Address:  payload.Address,
			ImageURL: payload.ImageURL,
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		if err := svc.Save(r.Context(), userID, profile); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
