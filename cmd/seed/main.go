package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/secondchance/secondchance-backend/internal/config"
	"github.com/secondchance/secondchance-backend/internal/db"
	"github.com/secondchance/secondchance-backend/internal/model"
	"github.com/secondchance/secondchance-backend/internal/repository"
	"github.com/secondchance/secondchance-backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Item{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	itemRepo := repository.NewItemRepository(gdb)
	itemSvc := service.NewItemService(itemRepo)

	if os.Getenv("FORCE_SEED") != "true" {
		maxID, err := itemRepo.MaxItemID(ctx)
		if err != nil {
			return fmt.Errorf("check existing items: %w", err)
		}
		if maxID > 0 {
			log.Printf("items already exist; skipping seed (set FORCE_SEED=true to override)")
			return nil
		}
	}

	inserted := 0
	for _, in := range sampleItems() {
		item, err := itemSvc.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("insert %q: %w", in.Name, err)
		}
		log.Printf("seeded item id=%s name=%q", item.ItemID, item.Name)
		inserted++
	}

	log.Printf("seed complete: inserted=%d", inserted)
	return nil
}

func sampleItems() []service.CreateItemInput {
	return []service.CreateItemInput{
		{
			Name:        "Bed Frame",
			Description: "Sturdy queen-size wooden bed frame, minor scratches on one leg.",
			Category:    "Furniture",
			Condition:   "Good",
			Zipcode:     "94110",
			Comments:    "Disassembles for transport.",
			AgeDays:     1095,
		},
		{
			Name:        "Refrigerator",
			Description: "Counter-depth refrigerator, runs quiet, all shelves included.",
			Category:    "Appliances",
			Condition:   "Fair",
			Zipcode:     "94117",
			AgeDays:     1825,
		},
		{
			Name:        "Office Chair",
			Description: "Ergonomic mesh-back office chair with adjustable armrests.",
			Category:    "Furniture",
			Condition:   "Like New",
			Zipcode:     "94103",
			AgeDays:     365,
		},
		{
			Name:        "Table Lamp",
			Description: "Brass table lamp with a linen shade, bulb included.",
			Category:    "Lighting",
			Condition:   "Good",
			Zipcode:     "94122",
			AgeDays:     540,
		},
		{
			Name:        "Road Bike",
			Description: "Aluminum-frame road bike, recently tuned, new tires.",
			Category:    "Sports",
			Condition:   "Good",
			Zipcode:     "94131",
			Comments:    "Helmet available on request.",
			AgeDays:     730,
		},
	}
}
