package main

import (
	"context"
	"log"
	"os"
	"time"

	"huntstay-be/internal/entity"
	"huntstay-be/internal/repository/implementation"
	"huntstay-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	userRepo := implementation.NewUserRepository(db)
	propertyRepo := implementation.NewPropertyRepository(db)

	// Admin account
	adminEmail := "admin@huntstay.test"
	if existing, _ := userRepo.FindByEmail(ctx, adminEmail); existing == nil {
		hash, _ := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
		admin := &entity.User{
			Id:           uuid.New(),
			Email:        adminEmail,
			PasswordHash: string(hash),
			FullName:     "HuntStay Admin",
			Role:         entity.RoleAdmin,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatal("Error: Failed to seed admin:", err)
		}
		log.Println("Seeded admin:", adminEmail)
	}

	// Sample outfitter with one approved, listed property
	providerEmail := "outfitter@huntstay.test"
	provider, _ := userRepo.FindByEmail(ctx, providerEmail)
	if provider == nil {
		hash, _ := bcrypt.GenerateFromPassword([]byte("outfitter-password"), bcrypt.DefaultCost)
		provider = &entity.User{
			Id:           uuid.New(),
			Email:        providerEmail,
			PasswordHash: string(hash),
			FullName:     "Sam Whitetail",
			Phone:        "+1-555-0100",
			Role:         entity.RoleProvider,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := userRepo.Create(ctx, provider); err != nil {
			log.Fatal("Error: Failed to seed provider:", err)
		}
		log.Println("Seeded provider:", providerEmail)

		property := &entity.Property{
			Id:          uuid.New(),
			ProviderId:  provider.Id,
			Name:        "Cedar Ridge Ranch",
			Description: "2,400 acres of managed whitetail habitat in the hill country.",
			Address:     "4100 County Road 12",
			City:        "Junction",
			State:       "TX",
			ZipCode:     "76849",
			Latitude:    30.4894,
			Longitude:   -99.7720,
			TotalAcres:  2400,
			Rules:       "No alcohol in the field. Blaze orange required during rifle season.",
			SafetyInfo:  "Cell coverage is spotty; check in at the lodge before heading out.",
			SeasonInfo:  "Whitetail: Nov-Jan. Hogs: year round.",
			HuntingPackages: []entity.HuntingPackage{
				{
					Id:                  uuid.NewString(),
					Name:                "3-Day Whitetail Rifle Hunt",
					Price:               1850,
					MaxHunters:          4,
					Duration:            3,
					HuntingType:         "whitetail",
					AccommodationStatus: entity.AccommodationIncluded,
				},
				{
					Id:          uuid.NewString(),
					Name:        "Weekend Hog Hunt",
					Price:       600,
					MaxHunters:  6,
					Duration:    2,
					HuntingType: "hog",
				},
			},
			Accommodations: []entity.Accommodation{
				{Type: "lodge", Name: "Main Lodge (sleeps 8)"},
			},
			ImageURLs: []string{},
			Status:    entity.PropertyStatusApproved,
			IsListed:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := propertyRepo.Create(ctx, property); err != nil {
			log.Fatal("Error: Failed to seed property:", err)
		}
		log.Println("Seeded property:", property.Name)
	}

	log.Println("✅ Seed completed")
}
