package update_kitchen_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	"github.com/kitchenly/KB-BookingService/internal/service/kitchens"
	"github.com/kitchenly/KB-BookingService/internal/service/kitchens/models"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgInvalidBody      = "некорректное тело запроса"
	msgKitchenNotFound  = "кухня не найдена"
	msgAccessDenied     = "изменение настроек доступно только менеджерам локации"
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

// Handle PUT /api/v1/kitchens/{kitchenId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("PUT /kitchens/{id}/config - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /kitchens/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	serviceReq := &models.UpdateConfigRequest{
		KitchenID:       kitchenID,
		UserID:          userID,
		HourlyRateCents: req.HourlyRateCents,
		MinBookingHours: req.MinBookingHours,
		SlotCapacity:    req.SlotCapacity,
	}

	config, err := h.service.UpdateConfig(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, kitchens.ErrKitchenNotFound):
			h.logger.Warn("PUT /kitchens/{id}/config - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		case errors.Is(err, kitchens.ErrAccessDenied):
			h.logger.Warn("PUT /kitchens/{id}/config - Access denied: kitchen_id=%d, user_id=%d", kitchenID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, kitchens.ErrInvalidInput):
			h.logger.Warn("PUT /kitchens/{id}/config - Invalid input: kitchen_id=%d: %v", kitchenID, err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("PUT /kitchens/{id}/config - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /kitchens/{id}/config - Config updated: kitchen_id=%d, user_id=%d", kitchenID, userID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
