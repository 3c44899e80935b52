package controllers

import (
	"net/http"

	"github.com/angelmondragon/talentconnect-backend/api/responses"
	"github.com/angelmondragon/talentconnect-backend/api/validators"
	"github.com/angelmondragon/talentconnect-backend/internal/contact"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
)

// ContactEquipment records a rental inquiry and emails the listing contact.
func ContactEquipment(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "contact")
			return
		}

		var body contact.EquipmentInquiryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.EquipmentInquiry(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ContactFreelancer(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "contact")
			return
		}

		var body contact.FreelancerContactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ContactFreelancer(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
