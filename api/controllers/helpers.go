package controllers

import (
	"net/http"

	"github.com/angelmondragon/talentconnect-backend/api/middleware"
	"github.com/angelmondragon/talentconnect-backend/api/responses"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/google/uuid"
)

// requireUser returns the authenticated user id or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "access token required"))
		return uuid.Nil, false
	}
	return userID, true
}

func serviceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, name+" service unavailable"))
}
