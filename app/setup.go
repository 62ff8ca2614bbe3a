package app

import (
	"fmt"
	"os"

	"github.com/educhanakya/campus-api/api"
	"github.com/educhanakya/campus-api/config"
	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/router"
	"github.com/educhanakya/campus-api/services/cron"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Open the embedded Badger store
	db, err := database.StartBadger()
	if err != nil {
		print("Check whether the data directory is writable\n")
		print("DATA_DIR defaults to data/educhanakya\n")
		return err
	}

	// Build the reactive store on top of Badger
	audit := database.NewAuditLog()
	store := database.NewStore(db, audit)

	// Seed demo data on first boot
	seeder := database.NewSeeder(store)
	if err := seeder.SeedAll(); err != nil {
		print("Failed to seed initial data\n")
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(db, store, audit)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		db.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes (security middleware is attached inside)
	router.SetupRoutes(app, db, store, audit)

	// Get the PORT & Start the Server
	return server.Run()

}
