package get_chef_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	"github.com/kitchenly/KB-BookingService/internal/service/bookings"
	"github.com/kitchenly/KB-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidChefID = "некорректный ID шефа"
	msgInvalidStatus = "некорректный статус бронирования"
	msgAccessDenied  = "нет доступа к бронированиям этого шефа"
	msgUnauthorized  = "требуется аутентификация"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/chefs/{chefId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	chefID, err := strconv.ParseInt(mux.Vars(r)["chefId"], 10, 64)
	if err != nil || chefID <= 0 {
		h.logger.Warn("GET /chefs/{id}/bookings - Invalid chef ID: %s", mux.Vars(r)["chefId"])
		handlers.RespondBadRequest(w, msgInvalidChefID)
		return
	}

	req := &models.GetChefBookingsRequest{
		ChefID: chefID,
		UserID: userID,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetChefBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /chefs/{id}/bookings - Access denied: chef_id=%d, user_id=%d", chefID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /chefs/{id}/bookings - Invalid status: chef_id=%d", chefID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /chefs/{id}/bookings - Failed: chef_id=%d, error=%v", chefID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /chefs/{id}/bookings - Returned %d bookings: chef_id=%d", len(result.Bookings), chefID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
