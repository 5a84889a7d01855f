package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTPConfig
	Telegram TelegramConfig
	Maps     MapsConfig
	Upload   UploadConfig
	WhatsApp WhatsAppConfig
	Shop     ShopConfig
	Delivery DeliveryConfig
	Session  SessionConfig
}

type HTTPConfig struct {
	Addr string
}

type TelegramConfig struct {
	Token string // customer bot; HTTP-only deployments leave it empty
}

type MapsConfig struct {
	APIKey  string
	BaseURL string // distance-matrix endpoint
	Mode    string // travel mode sent to the routing service
}

type UploadConfig struct {
	BaseURL string // payment-proof upload backend
}

type WhatsAppConfig struct {
	Number string // recipient of the final order message
}

// ShopConfig is the fixed origin distances are measured from.
type ShopConfig struct {
	Lat float64
	Lng float64
}

type DeliveryConfig struct {
	RatePerKm int64
	MinFee    int64 // flat floor, also the default fee before a location is resolved
}

type SessionConfig struct {
	TTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	ratePerKm, _ := strconv.ParseInt(getEnv("RATE_PER_KM", "20"), 10, 64)
	minFee, _ := strconv.ParseInt(getEnv("MIN_DELIVERY_FEE", "50"), 10, 64)
	ttlMinutes, _ := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "30"))
	shopLat, _ := strconv.ParseFloat(getEnv("SHOP_LAT", "17.385044"), 64)
	shopLng, _ := strconv.ParseFloat(getEnv("SHOP_LON", "78.486671"), 64)

	return &Config{
		HTTP: HTTPConfig{
			Addr: getEnv("ADDR", ":8080"),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		Maps: MapsConfig{
			APIKey:  getEnv("MAPS_API_KEY", ""),
			BaseURL: getEnv("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api/distancematrix/json"),
			Mode:    getEnv("MAPS_MODE", "driving"),
		},
		Upload: UploadConfig{
			BaseURL: getEnv("UPLOAD_BASE_URL", "http://localhost:8000"),
		},
		WhatsApp: WhatsAppConfig{
			Number: getEnv("WHATSAPP_NUMBER", ""),
		},
		Shop: ShopConfig{
			Lat: shopLat,
			Lng: shopLng,
		},
		Delivery: DeliveryConfig{
			RatePerKm: ratePerKm,
			MinFee:    minFee,
		},
		Session: SessionConfig{
			TTL: time.Duration(ttlMinutes) * time.Minute,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
