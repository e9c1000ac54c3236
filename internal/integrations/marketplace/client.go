package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
)

// Client клиент для работы с marketplace-сервисом.
// Отдаёт статусы заявок шефов и лицензий локаций.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента marketplace-сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetApplicationStatus получает статус заявки шефа на доступ к локации.
// Отсутствие заявки не ошибка - возвращается ApplicationNone.
func (c *Client) GetApplicationStatus(ctx context.Context, chefID, locationID int64) (domain.ApplicationStatus, error) {
	url := fmt.Sprintf("%s/internal/chefs/%d/applications/%d", c.baseURL, chefID, locationID)

	var application Application
	if err := c.getJSON(ctx, url, &application); err != nil {
		if err == ErrApplicationNotFound {
			c.log.Info("No application found for chef_id=%d location_id=%d", chefID, locationID)
			return domain.ApplicationNone, nil
		}
		return domain.ApplicationNone, err
	}

	switch application.Status {
	case "approved":
		return domain.ApplicationApproved, nil
	case "pending":
		return domain.ApplicationPending, nil
	case "rejected":
		return domain.ApplicationRejected, nil
	default:
		return domain.ApplicationNone, fmt.Errorf("%w: unknown application status %q", ErrInvalidResponse, application.Status)
	}
}

// GetKitchenLicense получает статус лицензии локации.
// Отсутствие записи трактуется как LicenseUnset.
func (c *Client) GetKitchenLicense(ctx context.Context, locationID int64) (domain.LicenseStatus, error) {
	url := fmt.Sprintf("%s/internal/locations/%d/license", c.baseURL, locationID)

	var license License
	if err := c.getJSON(ctx, url, &license); err != nil {
		if err == ErrLicenseNotFound {
			c.log.Warn("No license record for location_id=%d", locationID)
			return domain.LicenseUnset, nil
		}
		return domain.LicenseUnset, err
	}

	switch license.Status {
	case "approved":
		return domain.LicenseApproved, nil
	case "pending":
		return domain.LicensePending, nil
	case "rejected":
		return domain.LicenseRejected, nil
	default:
		return domain.LicenseUnset, fmt.Errorf("%w: unknown license status %q", ErrInvalidResponse, license.Status)
	}
}

func (c *Client) getJSON(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	case http.StatusNotFound:
		switch dest.(type) {
		case *Application:
			return ErrApplicationNotFound
		case *License:
			return ErrLicenseNotFound
		default:
			return fmt.Errorf("%w: unexpected 404", ErrInvalidResponse)
		}
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
