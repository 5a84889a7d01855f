package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"crispy-corner/bot"
	"crispy-corner/config"
	"crispy-corner/logger"
	"crispy-corner/metrics"
	"crispy-corner/models"
	"crispy-corner/routing"
	"crispy-corner/services"
	"crispy-corner/upload"
	"crispy-corner/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	catalog := services.DefaultCatalog()
	shop := models.LatLng{Lat: cfg.Shop.Lat, Lng: cfg.Shop.Lng}
	sessions := services.NewSessionRegistry(cfg.Session.TTL, func() *services.Resolver {
		return services.NewResolver(shop, cfg.Delivery.RatePerKm, cfg.Delivery.MinFee)
	})
	routes := routing.NewClient(cfg.Maps.BaseURL, cfg.Maps.APIKey, cfg.Maps.Mode)
	uploads := upload.NewClient(cfg.Upload.BaseURL)
	reg := metrics.NewRegistry()
	log := logger.New("crispy-corner")

	stop := make(chan struct{})
	defer close(stop)
	go sessions.StartSweeper(time.Minute, stop)

	if cfg.Telegram.Token != "" {
		b, err := bot.New(cfg, catalog, sessions, routes, uploads)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bot:", err)
			os.Exit(1)
		}
		go b.Start()
		fmt.Println("Telegram bot started.")
	}

	srv := web.NewServer(cfg, catalog, sessions, routes, uploads, reg, log)
	fmt.Println("Listening on", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, srv.Router()); err != nil {
		fmt.Fprintln(os.Stderr, "http:", err)
		os.Exit(1)
	}
}
