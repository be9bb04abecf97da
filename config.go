package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string // empty disables the irradiance cache
	MongoDB     string
	GeocoderURL string
	WeatherURL  string

	PricePerKWh  float64
	PricePerWatt float64

	SessionTTL time.Duration
}

func mustConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:         getenv("PORT", "8080"),
		JWTSecret:    getenv("JWT_SECRET", "change_me"),
		MongoURI:     getenv("MONGO_URI", ""),
		MongoDB:      getenv("MONGO_DB", "helioplan"),
		GeocoderURL:  getenv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		WeatherURL:   getenv("WEATHER_URL", "https://api.open-meteo.com"),
		PricePerKWh:  getenvFloat("PRICE_PER_KWH", 0.12),
		PricePerWatt: getenvFloat("PRICE_PER_WATT", 3.00),
		SessionTTL:   getenvDuration("SESSION_TTL", 2*time.Hour),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
