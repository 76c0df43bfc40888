// seed resets the database and fills it with generated sample data. It is
// a one-shot development utility; running it twice leaves exactly the
// configured counts because every run deletes all existing data first.
package main

import (
	"log"

	"crm/internal/database"
	"crm/internal/seed"

	"github.com/spf13/viper"
)

func main() {
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "crm.db")
	viper.SetDefault("SEED_CUSTOMERS", 10)
	viper.SetDefault("SEED_ORDERS", 20)
	viper.AutomaticEnv()

	db, err := database.Open(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seeder := seed.NewSeeder(db, viper.GetInt("SEED_CUSTOMERS"), viper.GetInt("SEED_ORDERS"))
	if err := seeder.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Database seeded successfully")
}
