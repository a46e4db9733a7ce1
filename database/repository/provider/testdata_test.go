package providerRepo

import "providerhub/models"

func ptr(f float64) *float64 { return &f }

func record(id string, rating float64, category string, lon, lat float64, services ...models.Service) models.ProviderRecord {
	return models.ProviderRecord{
		ID:           id,
		OwnerID:      "owner-" + id,
		BusinessName: "Business " + id,
		Category:     category,
		Location: models.Location{
			GeoPoint: models.NewGeoPoint(lon, lat),
			Address:  "1 Test Street",
		},
		Services: services,
		Rating:   rating,
	}
}

func svc(id, name, description string) models.Service {
	return models.Service{ID: id, Name: name, DurationMinutes: 30, Price: 20, Description: description}
}

func ids(matches []models.ProviderMatch) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.ID
	}
	return out
}
