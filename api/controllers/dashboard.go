package controllers

import (
	"net/http"

	"github.com/angelmondragon/talentconnect-backend/api/responses"
	"github.com/angelmondragon/talentconnect-backend/api/validators"
	"github.com/angelmondragon/talentconnect-backend/internal/freelancers"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
)

func DashboardProfile(svc freelancers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "dashboard")
			return
		}
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}
		result, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DashboardUpdateProfile applies account and profile edits, including the
// certificate list reconciliation.
func DashboardUpdateProfile(svc freelancers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "dashboard")
			return
		}
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}

		var body freelancers.UpdateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateProfile(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func DashboardDeleteCertificate(svc freelancers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "dashboard")
			return
		}
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}

		var body freelancers.DeleteCertificateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.DeleteCertificate(r.Context(), userID, body.CertificateURL)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
