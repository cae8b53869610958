package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"booking-server/internal/appointments"
	"booking-server/internal/middleware"
	"booking-server/internal/utils"
)

// rejectionStatus is the HTTP status of each rejection kind.
var rejectionStatus = map[appointments.Kind]int{
	appointments.KindValidation:      http.StatusBadRequest,
	appointments.KindSelfBooking:     http.StatusUnauthorized,
	appointments.KindNotProvider:     http.StatusUnauthorized,
	appointments.KindPastDate:        http.StatusBadRequest,
	appointments.KindUnavailable:     http.StatusBadRequest,
	appointments.KindNotFound:        http.StatusBadRequest,
	appointments.KindAlreadyCanceled: http.StatusBadRequest,
	appointments.KindNoPermission:    http.StatusUnauthorized,
	appointments.KindTooLate:         http.StatusBadRequest,
	appointments.KindProviderOnly:    http.StatusUnauthorized,
}

// respondError writes a rejection for domain errors and a 500 for anything
// else.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	if rej, ok := appointments.AsError(err); ok {
		status, known := rejectionStatus[rej.Kind]
		if !known {
			status = http.StatusBadRequest
		}
		utils.Rejected(c, status, string(rej.Kind), rej.Message)
		return
	}

	evt := log.Error().Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("path", c.FullPath())
	if errors.Is(err, appointments.ErrDispatch) {
		evt.Msg("background job submission failed")
		utils.InternalServerError(c, "Failed to schedule background job")
		return
	}
	evt.Msg("request failed")
	utils.InternalServerError(c, "Internal server error")
}

// currentUser returns the authenticated user id or replies 401.
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return 0, false
	}
	return userID, true
}

// idParam parses a positive numeric path parameter or replies 400.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// dayQuery reads ?date= as unix milliseconds, or replies 400.
func dayQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		utils.BadRequest(c, "Invalid date")
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid date")
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
