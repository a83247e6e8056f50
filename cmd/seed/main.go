package main

import (
	"context"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"wide-toebox-be/internal/entity"
	"wide-toebox-be/internal/repository/implementation"
	"wide-toebox-be/pkg/database"
)

func f(v float64) *float64 { return &v }

// Seeds a small starter catalog so the search endpoints have data to
// answer against. Idempotent by brand+model.
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
	if err := database.MigrateShoeCatalog(db); err != nil {
		log.Fatal("Error: migration failed:", err)
	}

	repo := implementation.NewShoeRepository(db)
	ctx := context.Background()

	shoes := []*entity.Shoe{
		{
			Brand:                 "Altra",
			Model:                 "Lone Peak 8",
			ForefootStackHeightMm: f(25),
			HeelStackHeightMm:     f(25),
			DropMm:                f(0),
			Fit:                   "wide",
			WideOption:            true,
			IntendedUse:           "trail",
			Description:           "Zero drop trail shoe with a foot-shaped toe box.",
			Genders: []entity.ShoeGender{
				{Gender: "men", PriceRRP: f(140), WeightGrams: f(315)},
				{Gender: "women", PriceRRP: f(140), WeightGrams: f(263)},
			},
			Reviews: []entity.ShoeReview{
				{
					Fit:        "Roomy toe box, true to size.",
					Feel:       "Firm but protective on technical terrain.",
					Durability: "Upper holds up well past 500 miles.",
					SourceURL:  "https://example.com/reviews/altra-lone-peak-8",
				},
			},
		},
		{
			Brand:                 "Topo Athletic",
			Model:                 "Phantom 3",
			ForefootStackHeightMm: f(28),
			HeelStackHeightMm:     f(33),
			DropMm:                f(5),
			Fit:                   "wide",
			WideOption:            false,
			IntendedUse:           "road",
			Description:           "Cushioned road trainer with a roomy forefoot.",
			Genders: []entity.ShoeGender{
				{Gender: "men", PriceRRP: f(150), WeightGrams: f(292)},
				{Gender: "women", PriceRRP: f(150), WeightGrams: f(244)},
			},
		},
		{
			Brand:                 "Xero Shoes",
			Model:                 "HFS II",
			ForefootStackHeightMm: f(6),
			HeelStackHeightMm:     f(6),
			DropMm:                f(0),
			Fit:                   "wide",
			WideOption:            false,
			IntendedUse:           "road",
			Description:           "Minimalist zero drop road shoe with a thin flexible sole.",
			Genders: []entity.ShoeGender{
				{Gender: "unisex", PriceRRP: f(120), WeightGrams: f(221)},
			},
		},
	}

	seeded := 0
	for _, shoe := range shoes {
		var count int64
		if err := db.Table("shoes").
			Where("brand = ? AND model = ?", shoe.Brand, shoe.Model).
			Count(&count).Error; err != nil {
			log.Fatalf("Error: lookup failed: %v", err)
		}
		if count > 0 {
			color.Yellow("  skip: %s %s already present", shoe.Brand, shoe.Model)
			continue
		}
		if err := repo.Create(ctx, shoe); err != nil {
			log.Fatalf("Error: failed to seed %s %s: %v", shoe.Brand, shoe.Model, err)
		}
		color.Green("  seeded: %s %s", shoe.Brand, shoe.Model)
		seeded++
	}

	color.Cyan("✅ Seeding complete: %d new shoe(s)", seeded)
}
