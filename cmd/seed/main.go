package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Meghana-05-02/RFP-System/internal/config"
	"github.com/Meghana-05-02/RFP-System/internal/database"
	"github.com/Meghana-05-02/RFP-System/internal/models"
	"github.com/Meghana-05-02/RFP-System/internal/repositories"
)

// seed loads sample vendors and an RFP for demo purposes. Safe to run more
// than once; existing rows are left alone.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	pool, err := database.Connect(cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.RunMigrations(pool); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	vendorRepo := repositories.NewVendorRepository(pool)
	rfpRepo := repositories.NewRFPRepository(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vendors := []models.Vendor{
		{Name: "Dell Technologies", Email: "sales@dell.com", ContactPerson: "John Smith"},
		{Name: "HP Inc.", Email: "enterprise@hp.com", ContactPerson: "Sarah Johnson"},
		{Name: "Lenovo", Email: "business@lenovo.com", ContactPerson: "Michael Chen"},
	}

	for i := range vendors {
		err := vendorRepo.Create(ctx, &vendors[i])
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			fmt.Printf("- Vendor already exists: %s\n", vendors[i].Name)
		case err != nil:
			logger.Fatal("failed to create vendor", zap.String("name", vendors[i].Name), zap.Error(err))
		default:
			fmt.Printf("✓ Created vendor: %s\n", vendors[i].Name)
		}
	}

	title := "Office Laptop Procurement 2025"

	existing, err := rfpRepo.GetByTitle(ctx, title)
	if err != nil {
		logger.Fatal("failed to look up rfp", zap.Error(err))
	}
	if existing != nil {
		fmt.Printf("- RFP already exists: %s\n", title)
		return
	}

	budget := 150000.00
	rfp := &models.RFP{
		Title: title,
		NaturalLanguageInput: `We need to procure high-quality laptops for our growing team.

Requirements:
- Modern laptops suitable for software development and general office work
- Must support latest development tools and IDEs
- Good battery life (at least 8 hours)
- Warranty and support required

Please provide competitive pricing and delivery timeline.`,
		Budget: &budget,
		Status: models.StatusDraft,
	}

	items := []models.RFPItem{
		{Name: "Developer Laptops", Quantity: 25, Specifications: `Intel i7 or AMD Ryzen 7, 16GB RAM, 512GB SSD, 15.6" display`},
		{Name: "Office Laptops", Quantity: 30, Specifications: `Intel i5 or AMD Ryzen 5, 8GB RAM, 256GB SSD, 14" display`},
		{Name: "Extended Warranty", Quantity: 55, Specifications: "3-year on-site warranty and support for all laptops"},
	}

	if err := rfpRepo.CreateWithItems(ctx, rfp, items); err != nil {
		logger.Fatal("failed to create rfp", zap.Error(err))
	}

	fmt.Printf("✓ Created RFP: %s\n", rfp.Title)
	for _, item := range rfp.Items {
		fmt.Printf("  ✓ Added item: %s (Qty: %d)\n", item.Name, item.Quantity)
	}

	fmt.Println("\nDatabase seeding completed!")
}
