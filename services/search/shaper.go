package search

import "providerhub/models"

// Shape builds the response body. Providers is never nil so it always
// serializes as a JSON array.
func Shape(matches []models.ProviderMatch, pagination models.Pagination) *models.SearchResponse {
	providers := make([]models.ProviderSummary, 0, len(matches))
	for _, m := range matches {
		providers = append(providers, summarize(m))
	}
	return &models.SearchResponse{
		Providers:  providers,
		Pagination: pagination,
	}
}

func summarize(m models.ProviderMatch) models.ProviderSummary {
	services := make([]models.ServiceSummary, 0, len(m.Services))
	for _, s := range m.Services {
		services = append(services, models.ServiceSummary{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	var owner *models.OwnerIdentity
	if m.Owner != nil {
		o := *m.Owner
		owner = &o
	}

	hours := m.WorkingHours
	if hours == nil {
		hours = []models.WorkingHours{}
	}
	images := m.Images
	if images == nil {
		images = []string{}
	}

	return models.ProviderSummary{
		ID:           m.ID,
		Owner:        owner,
		BusinessName: m.BusinessName,
		Description:  m.Description,
		Category:     m.Category,
		Location:     m.Location,
		Services:     services,
		WorkingHours: hours,
		Rating:       m.Rating,
		TotalRatings: m.TotalRatings,
		IsVerified:   m.IsVerified,
		Images:       images,
	}
}
