package dto

// Flash categories, matching the alert levels of the forms.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Page is the view model every GET route renders.
type Page struct {
	Page     string  `json:"page"`
	Username string  `json:"username,omitempty"`
	Role     string  `json:"role,omitempty"`
	Flashes  []Flash `json:"flashes"`
	Data     any     `json:"data,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	SslMode  string `json:"ssl_mode"`
}
