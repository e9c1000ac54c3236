package marketplace

// Application заявка шефа на доступ к локации
type Application struct {
	ID         int64  `json:"id"`
	ChefID     int64  `json:"chef_id"`
	LocationID int64  `json:"location_id"`
	Status     string `json:"status"` // approved / pending / rejected
}

// License запись о лицензии локации
type License struct {
	LocationID int64  `json:"location_id"`
	Status     string `json:"status"` // approved / pending / rejected
	Number     string `json:"number,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"`
}

// ErrorResponse модель ошибки от marketplace-сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
