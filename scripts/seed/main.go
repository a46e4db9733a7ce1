// Command seed fills the provider store with simulated listings around a
// fixed point. With STORE_DRIVER=memory it writes a fixture to SEED_FILE
// instead of touching MongoDB.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"providerhub/config"
	"providerhub/database"
	providerRepo "providerhub/database/repository/provider"
	"providerhub/models"
	"providerhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Fixed search point for the simulation (Beirut).
const (
	centerLon = 35.5018
	centerLat = 33.8938
)

var categories = []struct {
	Name     string
	Services []string
}{
	{"salon", []string{"Haircut", "Blow dry", "Hair coloring"}},
	{"spa", []string{"Massage", "Facial", "Sauna"}},
	{"cleaning", []string{"Deep cleaning", "Window cleaning", "Carpet cleaning"}},
	{"barber", []string{"Beard trim", "Haircut", "Hot towel shave"}},
}

const providersPerCategory = 10

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fixture := generate(rng)

	if config.AppConfig.StoreDriver == config.StoreDriverMemory {
		if err := writeFixture(config.AppConfig.SeedFile, fixture); err != nil {
			logger.Fatal("Failed to write seed fixture", zap.Error(err))
		}
		logger.Info("Wrote seed fixture",
			zap.String("file", config.AppConfig.SeedFile),
			zap.Int("providers", len(fixture.Providers)),
		)
		return
	}

	if err := database.InitDB(); err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer database.Disconnect(ctx)

	if err := seedMongo(ctx, fixture); err != nil {
		logger.Fatal("Failed to seed MongoDB", zap.Error(err))
	}
	logger.Info("Seeded MongoDB",
		zap.String("database", config.AppConfig.DatabaseName),
		zap.Int("owners", len(fixture.Owners)),
		zap.Int("providers", len(fixture.Providers)),
	)
}

func generate(rng *rand.Rand) providerRepo.Fixture {
	var fx providerRepo.Fixture
	total := len(categories) * providersPerCategory

	// Spread providers linearly from ~50 m out to 15 km so some fall outside
	// the search radius.
	maxDistanceKm, minDistanceKm := 15.0, 0.05
	spacing := (maxDistanceKm - minDistanceKm) / float64(total-1)

	n := 0
	for _, cat := range categories {
		for i := 1; i <= providersPerCategory; i++ {
			distanceKm := minDistanceKm + spacing*float64(n)
			angle := rng.Float64() * 2 * math.Pi
			// 1 km is roughly 0.009 degrees of latitude; longitude shrinks with cos(lat).
			deltaLat := distanceKm * 0.009 * math.Sin(angle)
			deltaLon := distanceKm * 0.009 / math.Cos(centerLat*math.Pi/180) * math.Cos(angle)

			owner := models.Owner{
				ID: uuid.NewString(),
				OwnerIdentity: models.OwnerIdentity{
					Name:  fmt.Sprintf("Owner %d", n+1),
					Phone: fmt.Sprintf("+9613%06d", n+1),
					Email: fmt.Sprintf("owner%d@example.com", n+1),
				},
			}
			fx.Owners = append(fx.Owners, owner)

			var services []models.Service
			for _, name := range cat.Services {
				services = append(services, models.Service{
					ID:              uuid.NewString(),
					Name:            name,
					DurationMinutes: 30 + 15*rng.Intn(5),
					Price:           math.Round((10+rng.Float64()*90)*100) / 100,
					Description:     fmt.Sprintf("%s by a %s professional", name, cat.Name),
				})
			}

			fx.Providers = append(fx.Providers, models.ProviderRecord{
				ID:           uuid.NewString(),
				OwnerID:      owner.ID,
				BusinessName: fmt.Sprintf("%s %s %d", titleCase(cat.Name), "Studio", i),
				Description:  fmt.Sprintf("Neighbourhood %s open six days a week", cat.Name),
				Category:     cat.Name,
				Location: models.Location{
					GeoPoint: models.NewGeoPoint(centerLon+deltaLon, centerLat+deltaLat),
					Address:  fmt.Sprintf("%d Main Street", 10+n),
				},
				Services:     services,
				WorkingHours: weekHours(),
				Rating:       math.Round(rng.Float64()*50) / 10,
				TotalRatings: rng.Intn(500),
				IsVerified:   rng.Intn(2) == 0,
				Images:       []string{},
			})
			n++
		}
	}
	return fx
}

func weekHours() []models.WorkingHours {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	hours := make([]models.WorkingHours, 0, len(days))
	for _, d := range days {
		hours = append(hours, models.WorkingHours{Day: d, Open: "09:00", Close: "18:00", IsClosed: d == "sunday"})
	}
	return hours
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func writeFixture(path string, fx providerRepo.Fixture) error {
	if path == "" {
		return fmt.Errorf("SEED_FILE is not set")
	}
	data, err := json.MarshalIndent(fx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func seedMongo(ctx context.Context, fx providerRepo.Fixture) error {
	db := database.Database()
	users := db.Collection(providerRepo.UsersCollection)
	providers := db.Collection(providerRepo.ProvidersCollection)

	// Clear existing data.
	if _, err := providers.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear providers: %w", err)
	}
	if _, err := users.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	ownerDocs := make([]interface{}, len(fx.Owners))
	for i, o := range fx.Owners {
		ownerDocs[i] = o
	}
	if _, err := users.InsertMany(ctx, ownerDocs); err != nil {
		return fmt.Errorf("failed to insert owners: %w", err)
	}

	providerDocs := make([]interface{}, len(fx.Providers))
	for i, p := range fx.Providers {
		providerDocs[i] = p
	}
	if _, err := providers.InsertMany(ctx, providerDocs); err != nil {
		return fmt.Errorf("failed to insert providers: %w", err)
	}

	return providerRepo.NewMongoProviderRepo(db).EnsureIndexes(ctx)
}
