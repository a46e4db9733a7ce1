package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(longitude, latitude float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

// Longitude returns the first coordinate, or 0 when the point is empty.
func (g GeoPoint) Longitude() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[0]
}

// Latitude returns the second coordinate, or 0 when the point is empty.
func (g GeoPoint) Latitude() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[1]
}

// Valid reports whether the point carries exactly one in-range coordinate pair.
func (g GeoPoint) Valid() bool {
	if len(g.Coordinates) != 2 {
		return false
	}
	lon, lat := g.Coordinates[0], g.Coordinates[1]
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// Location is the provider's position plus its street address. The GeoJSON
// fields are stored inline so the whole object can carry a 2dsphere index.
type Location struct {
	GeoPoint `bson:",inline"`
	Address  string `bson:"address" json:"address"`
}

type Service struct {
	ID              string  `bson:"_id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64 `bson:"price" json:"price"`
	Description     string  `bson:"description,omitempty" json:"description,omitempty"`
}

type WorkingHours struct {
	Day      string `bson:"day" json:"day"`     // monday..sunday
	Open     string `bson:"open" json:"open"`   // HH:mm, 24h
	Close    string `bson:"close" json:"close"` // HH:mm, 24h
	IsClosed bool   `bson:"isClosed" json:"isClosed"`
}

// ProviderRecord is a listed business as persisted in the providers collection.
// Search never writes it.
type ProviderRecord struct {
	ID           string         `bson:"_id" json:"id"`
	OwnerID      string         `bson:"ownerId" json:"ownerId"`
	BusinessName string         `bson:"businessName" json:"businessName"`
	Description  string         `bson:"description" json:"description"`
	Category     string         `bson:"category" json:"category"`
	Location     Location       `bson:"location" json:"location"`
	Services     []Service      `bson:"services" json:"services"`
	WorkingHours []WorkingHours `bson:"workingHours" json:"workingHours"`
	Rating       float64        `bson:"rating" json:"rating"`             // 0..5
	TotalRatings int            `bson:"totalRatings" json:"totalRatings"` // backs the rating average
	IsVerified   bool           `bson:"isVerified" json:"isVerified"`
	Images       []string       `bson:"images" json:"images"`
}

// OwnerIdentity is the public projection of the user that owns a provider.
type OwnerIdentity struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

// Owner is the slice of the users collection the search joins against.
type Owner struct {
	ID            string `bson:"_id" json:"id"`
	OwnerIdentity `bson:",inline"`
}

// ProviderMatch is a provider as returned by a store query: the record, its
// joined owner (nil when the owner could not be resolved) and, on the
// spatial path, the computed distance in metres.
type ProviderMatch struct {
	ProviderRecord `bson:",inline"`
	Owner          *OwnerIdentity `bson:"owner,omitempty"`
	Distance       float64        `bson:"distance,omitempty"`
}
