// Package notify отправляет уведомления о событиях бронирования во внешний
// notification-сервис. Отправка fire-and-forget: ошибка уведомления никогда
// не откатывает бронирование, только логируется.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/kitchenly/KB-BookingService/internal/domain"
)

const (
	eventBookingCreated   = "booking.created"
	eventBookingConfirmed = "booking.confirmed"
	eventBookingCancelled = "booking.cancelled"
)

// Client клиент notification-сервиса с ограничением частоты отправки
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает новый экземпляр клиента notification-сервиса
func NewClient(baseURL string, timeout time.Duration, ratePerSecond float64, burst int, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		log:     log,
	}
}

// NotifyBookingCreated уведомляет о создании бронирования
func (c *Client) NotifyBookingCreated(ctx context.Context, booking *domain.Booking) {
	c.send(ctx, c.buildEvent(eventBookingCreated, booking, ""))
}

// NotifyBookingConfirmed уведомляет о подтверждении бронирования
func (c *Client) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking) {
	c.send(ctx, c.buildEvent(eventBookingConfirmed, booking, ""))
}

// NotifyBookingCancelled уведомляет об отмене бронирования с причиной
func (c *Client) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking, reason string) {
	c.send(ctx, c.buildEvent(eventBookingCancelled, booking, reason))
}

func (c *Client) buildEvent(event string, booking *domain.Booking, reason string) BookingEvent {
	return BookingEvent{
		Event:       event,
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		KitchenID:   booking.KitchenID,
		ChefID:      booking.ChefID,
		BookingDate: booking.BookingDate.Format(domain.DateFormat),
		StartTime:   booking.StartTime.String(),
		EndTime:     booking.EndTime.String(),
		Reason:      reason,
	}
}

func (c *Client) send(ctx context.Context, event BookingEvent) {
	if err := c.post(ctx, event); err != nil {
		c.log.Error("Failed to send %s notification for booking_id=%d: %v", event.Event, event.BookingID, err)
		return
	}
	c.log.Info("Sent %s notification for booking_id=%d", event.Event, event.BookingID)
}

func (c *Client) post(ctx context.Context, event BookingEvent) error {
	if !c.limiter.Allow() {
		return fmt.Errorf("%w: dropping %s for booking_id=%d", ErrRateLimited, event.Event, event.BookingID)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications/bookings", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}
