package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/platefeed/backend/config"
	"github.com/platefeed/backend/internal/database"
	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/service"
)

// Bulk-imports the ingredient and tag reference catalogs from JSON files.
func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.json", "path to the ingredients JSON file")
	tagsPath := flag.String("tags", "", "optional path to a tags JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	catalog := service.NewCatalogService(db)
	ctx := context.Background()

	var ingredients []models.Ingredient
	if err := readJSON(*ingredientsPath, &ingredients); err != nil {
		log.Fatalf("failed to read %s: %v", *ingredientsPath, err)
	}
	if err := catalog.ImportIngredients(ctx, ingredients); err != nil {
		log.Fatalf("failed to import ingredients: %v", err)
	}
	log.Printf("Imported %d ingredients", len(ingredients))

	if *tagsPath != "" {
		var tags []models.Tag
		if err := readJSON(*tagsPath, &tags); err != nil {
			log.Fatalf("failed to read %s: %v", *tagsPath, err)
		}
		if err := catalog.ImportTags(ctx, tags); err != nil {
			log.Fatalf("failed to import tags: %v", err)
		}
		log.Printf("Imported %d tags", len(tags))
	}
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
