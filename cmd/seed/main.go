package main // Seeds the database with sample rooms and a default admin account.

import (
    "context"
    "database/sql"
    "log"
    "time"

    "github.com/joho/godotenv"

    "github.com/wildriver/resort-booking/internal/config"
    "github.com/wildriver/resort-booking/internal/database"
    "github.com/wildriver/resort-booking/internal/model"
    "github.com/wildriver/resort-booking/internal/repository"
)

func sptr(s string) *string { return &s }

// seedRooms is the sample catalog.  Room types are deliberately varied so
// that browsing, per-type availability and the default-rate fallback can
// all be exercised against seeded data.
var seedRooms = []model.Room{
	{
		Name:          "Deluxe Mountain View Room",
		Type:          "Deluxe",
		Description:   "Spacious room with breathtaking mountain views, private balcony, and premium amenities.",
		PricePerNight: 89.99,
		Capacity:      3,
		Amenities:     []string{"Mountain View", "Private Balcony", "King Bed", "Mini Bar", "Room Service", "Free WiFi"},
		ImageURL:      sptr("/images/room1.jpg"),
		IsAvailable:   true,
	},
	{
		Name:          "Premium Wildlife Suite",
		Type:          "Suite",
		Description:   "Luxurious suite designed for wildlife enthusiasts with large windows overlooking the natural habitat.",
		PricePerNight: 149.99,
		Capacity:      4,
		Amenities:     []string{"Wildlife View", "Large Windows", "King Bed", "Living Area", "Free WiFi", "Guided Tours"},
		ImageURL:      sptr("/images/room2.jpg"),
		IsAvailable:   true,
	},
	{
		Name:          "Family Villa",
		Type:          "Villa",
		Description:   "Large family villa with multiple bedrooms, kitchen, and garden.",
		PricePerNight: 199.99,
		Capacity:      6,
		Amenities:     []string{"Multiple Bedrooms", "Kitchen", "Garden", "Mountain View", "Free WiFi", "Parking"},
		ImageURL:      sptr("/images/room3.jpg"),
		IsAvailable:   true,
	},
	{
		Name:          "Adventure Lodge Room",
		Type:          "Standard",
		Description:   "Comfortable room designed for adventure seekers, close to hiking trails and wildlife viewing areas.",
		PricePerNight: 69.99,
		Capacity:      2,
		Amenities:     []string{"Queen Bed", "Free WiFi", "TV", "Air Conditioning", "Adventure Gear Storage"},
		ImageURL:      sptr("/images/room1.jpg"),
		IsAvailable:   true,
	},
	{
		Name:          "Garden Cottage",
		Type:          "Cottage",
		Description:   "Charming cottage surrounded by beautiful gardens, perfect for nature lovers seeking tranquility.",
		PricePerNight: 79.99,
		Capacity:      2,
		Amenities:     []string{"Queen Bed", "Garden View", "Free WiFi", "Private Garden", "Air Conditioning"},
		ImageURL:      sptr("/images/room2.jpg"),
		IsAvailable:   true,
	},
	{
		Name:          "Executive Mountain Suite",
		Type:          "Suite",
		Description:   "Luxurious executive suite with business amenities, separate living area, and stunning mountain views.",
		PricePerNight: 129.99,
		Capacity:      3,
		Amenities:     []string{"King Bed", "Living Room", "Work Desk", "Mountain View", "Free WiFi", "Room Service"},
		ImageURL:      sptr("/images/room3.jpg"),
		IsAvailable:   true,
	},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rooms := repository.NewRoomRepo(db)
	users := repository.NewUserRepo(db)

	// Skip room seeding when the catalog already has rows, so re-running
	// the seeder never duplicates data.
	n, err := rooms.Count(ctx)
	if err != nil {
		log.Fatalf("count rooms: %v", err)
	}
	if n > 0 {
		log.Printf("rooms already seeded (%d rows), skipping", n)
	} else {
		for i := range seedRooms {
			if err := rooms.Create(ctx, &seedRooms[i]); err != nil {
				log.Fatalf("seed room %q: %v", seedRooms[i].Name, err)
			}
		}
		log.Printf("seeded %d rooms", len(seedRooms))
	}

	// Default admin account.  The password is a known development value;
	// change it before exposing the service.
	const adminEmail = "admin@resort.com"
	switch _, err := users.GetByEmail(ctx, adminEmail); {
	case err == nil:
		log.Printf("admin user already exists, skipping")
		return
	case err != sql.ErrNoRows:
		log.Fatalf("lookup admin: %v", err)
	}
	if _, err := users.Create(ctx, "Admin User", adminEmail, "admin123", model.RoleAdmin, cfg.BcryptCost); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("created admin user %s", adminEmail)
}
