package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"helioplan/geom"
)

type App struct {
	cfg      Config
	sessions *sessionRegistry
	geocoder *geocodeClient
	weather  *weatherClient

	mongo *mongo.Client // nil when the cache is disabled
	cache *weatherCache
}

func newApp(ctx context.Context, cfg Config) (*App, error) {
	app := &App{
		cfg:      cfg,
		sessions: newSessionRegistry(geom.Area, cfg.SessionTTL),
		geocoder: newGeocodeClient(cfg.GeocoderURL),
		weather:  newWeatherClient(cfg.WeatherURL),
	}

	if cfg.MongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, err
		}
		cache, err := newWeatherCache(ctx, client.Database(cfg.MongoDB))
		if err != nil {
			return nil, err
		}
		app.mongo = client
		app.cache = cache
		log.Println("irradiance cache enabled")
	}

	return app, nil
}

func (a *App) close(ctx context.Context) {
	if a.mongo != nil {
		_ = a.mongo.Disconnect(ctx)
	}
}
