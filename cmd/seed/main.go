package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ingredientData "philcali.me/cookbook/internal/dynamodb/ingredients"
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/seed"
)

// Bulk-loads the ingredient catalog from a CSV export. The catalog is
// reference data shared by every recipe, so this runs once per
// deployment rather than behind an API route.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <ingredients.csv>\n", os.Args[0])
		os.Exit(1)
	}
	tableName := os.Getenv("TABLE_NAME")
	if tableName == "" {
		fmt.Fprintln(os.Stderr, "TABLE_NAME is required")
		os.Exit(1)
	}
	fd, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %s\n", os.Args[1], err)
		os.Exit(1)
	}
	defer fd.Close()
	rows, err := seed.ParseIngredients(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse %s: %s\n", os.Args[1], err)
		os.Exit(1)
	}
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load AWS config: %s\n", err)
		os.Exit(1)
	}
	client := dynamodb.NewFromConfig(cfg)
	catalog := ingredientData.NewIngredientService(tableName, *client, token.NewGCM())
	imported, err := catalog.BatchImportIngredients(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to import the catalog: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d of %d catalog rows into %s\n", imported, len(rows), tableName)
}
