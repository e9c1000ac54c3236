package get_open_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/domain"
	getSlots "github.com/kitchenly/KB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgInvalidDate      = "некорректный параметр date, ожидается YYYY-MM-DD"
	msgKitchenNotFound  = "кухня не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/kitchens/{kitchenId}/open-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("GET /kitchens/{id}/open-slots - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /kitchens/{id}/open-slots - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		KitchenID: kitchenID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrKitchenNotFound):
			h.logger.Warn("GET /kitchens/{id}/open-slots - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		case errors.Is(err, getSlots.ErrInvalidInput), errors.Is(err, getSlots.ErrInvalidDate):
			h.logger.Warn("GET /kitchens/{id}/open-slots - Invalid input: kitchen_id=%d: %v", kitchenID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /kitchens/{id}/open-slots - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /kitchens/{id}/open-slots - Returned %d slots: kitchen_id=%d, date=%s",
		len(result.Slots), kitchenID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
