package get_kitchen_bookings

import (
	"context"

	"github.com/kitchenly/KB-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetKitchenBookings(ctx context.Context, req *models.GetKitchenBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
