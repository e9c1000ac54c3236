package delete_kitchen

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	"github.com/kitchenly/KB-BookingService/internal/service/kitchens"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgKitchenNotFound  = "кухня не найдена"
	msgAccessDenied     = "удаление кухни доступно только менеджерам локации"
	msgHasBookings      = "кухня с бронированиями не может быть удалена"
	msgUnauthorized     = "требуется аутентификация"
)

type Handler struct {
	service KitchenService
	logger  Logger
}

func NewHandler(service KitchenService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/kitchens/{kitchenId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("DELETE /kitchens/{id} - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	if err := h.service.Delete(r.Context(), kitchenID, userID); err != nil {
		switch {
		case errors.Is(err, kitchens.ErrKitchenNotFound):
			h.logger.Warn("DELETE /kitchens/{id} - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		case errors.Is(err, kitchens.ErrAccessDenied):
			h.logger.Warn("DELETE /kitchens/{id} - Access denied: kitchen_id=%d, user_id=%d", kitchenID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, kitchens.ErrHasBookings):
			h.logger.Warn("DELETE /kitchens/{id} - Kitchen has bookings: kitchen_id=%d", kitchenID)
			handlers.RespondError(w, http.StatusConflict, msgHasBookings)

		default:
			h.logger.Error("DELETE /kitchens/{id} - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /kitchens/{id} - Kitchen deleted: kitchen_id=%d, user_id=%d", kitchenID, userID)
	w.WriteHeader(http.StatusNoContent)
}
