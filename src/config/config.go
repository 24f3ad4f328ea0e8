package config

import "os"

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	CORSOrigins   string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "5000"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DB", "blood_donation"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@bloodbank.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
