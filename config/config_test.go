package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Delivery.RatePerKm != 20 {
		t.Errorf("RatePerKm = %d, want 20", cfg.Delivery.RatePerKm)
	}
	if cfg.Delivery.MinFee != 50 {
		t.Errorf("MinFee = %d, want 50", cfg.Delivery.MinFee)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("TTL = %v, want 30m", cfg.Session.TTL)
	}
	if cfg.Maps.Mode != "driving" {
		t.Errorf("Mode = %q, want driving", cfg.Maps.Mode)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("RATE_PER_KM", "35")
	t.Setenv("MIN_DELIVERY_FEE", "0")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("SHOP_LAT", "12.9716")
	t.Setenv("WHATSAPP_NUMBER", "911234567890")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Delivery.RatePerKm != 35 {
		t.Errorf("RatePerKm = %d", cfg.Delivery.RatePerKm)
	}
	if cfg.Delivery.MinFee != 0 {
		t.Errorf("MinFee = %d", cfg.Delivery.MinFee)
	}
	if cfg.Session.TTL != 5*time.Minute {
		t.Errorf("TTL = %v", cfg.Session.TTL)
	}
	if cfg.Shop.Lat != 12.9716 {
		t.Errorf("Shop.Lat = %v", cfg.Shop.Lat)
	}
	if cfg.WhatsApp.Number != "911234567890" {
		t.Errorf("Number = %q", cfg.WhatsApp.Number)
	}
}
