package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV   string
	PORT     int
	DATA_DIR string
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Gemini Configuration
	GEMINI_API_KEY  string
	GEMINI_MODEL    string
	GEMINI_BASE_URL string
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Storage defaults
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data/educhanakya"
	}

	envVariables := &EnviornmentVariable{
		GO_ENV:   os.Getenv("GO_ENV"),
		PORT:     port,
		DATA_DIR: dataDir,
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: os.Getenv("JWT_ISSUER"),
		// Gemini
		GEMINI_API_KEY:  os.Getenv("GEMINI_API_KEY"),
		GEMINI_MODEL:    os.Getenv("GEMINI_MODEL"),
		GEMINI_BASE_URL: os.Getenv("GEMINI_BASE_URL"),
	}

	return envVariables, nil
}
