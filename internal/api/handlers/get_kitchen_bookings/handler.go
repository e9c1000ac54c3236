package get_kitchen_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/internal/service/bookings"
	"github.com/kitchenly/KB-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgInvalidFilter    = "некорректные параметры фильтрации"
	msgKitchenNotFound  = "кухня не найдена"
	msgAccessDenied     = "просмотр бронирований кухни доступен только менеджерам локации"
	msgUnauthorized     = "требуется аутентификация"
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

// Handle GET /api/v1/kitchens/{kitchenId}/bookings?chefId=&startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("GET /kitchens/{id}/bookings - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	req := &models.GetKitchenBookingsRequest{
		KitchenID: kitchenID,
		UserID:    userID,
	}

	query := r.URL.Query()

	if raw := query.Get("chefId"); raw != "" {
		chefID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || chefID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.ChefID = &chefID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetKitchenBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrKitchenNotFound):
			h.logger.Warn("GET /kitchens/{id}/bookings - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /kitchens/{id}/bookings - Access denied: kitchen_id=%d, user_id=%d", kitchenID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /kitchens/{id}/bookings - Invalid filter: kitchen_id=%d", kitchenID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /kitchens/{id}/bookings - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /kitchens/{id}/bookings - Returned %d bookings: kitchen_id=%d", len(result.Bookings), kitchenID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
