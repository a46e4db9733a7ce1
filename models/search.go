package models

// ServiceSummary is a service entry without its long-form description.
type ServiceSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ProviderSummary is the search listing shape. It is identical for both
// execution paths; the owner reference is resolved to its public identity.
type ProviderSummary struct {
	ID           string           `json:"id"`
	Owner        *OwnerIdentity   `json:"ownerId"`
	BusinessName string           `json:"businessName"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Location     Location         `json:"location"`
	Services     []ServiceSummary `json:"services"`
	WorkingHours []WorkingHours   `json:"workingHours"`
	Rating       float64          `json:"rating"`
	TotalRatings int              `json:"totalRatings"`
	IsVerified   bool             `json:"isVerified"`
	Images       []string         `json:"images"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

type SearchResponse struct {
	Providers  []ProviderSummary `json:"providers"`
	Pagination Pagination        `json:"pagination"`
}
