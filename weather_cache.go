// file: weather_cache.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// weatherCache stores fetched peak-sun-hours figures keyed by rounded
// coordinates so repeated searches around the same spot skip the upstream
// call. Entries expire via a TTL index; the cache is best-effort and every
// failure degrades to a plain fetch.
type weatherCache struct {
	coll *mongo.Collection
}

type cachedSample struct {
	Key        string    `bson:"_id"`
	DailyHours float64   `bson:"dailyHours"`
	Source     string    `bson:"source"`
	FetchedAt  time.Time `bson:"fetchedAt"`
}

const weatherCacheTTL = 24 * time.Hour

func newWeatherCache(ctx context.Context, db *mongo.Database) (*weatherCache, error) {
	coll := db.Collection("irradiance_cache")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "fetchedAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(weatherCacheTTL / time.Second)),
	})
	if err != nil {
		return nil, err
	}
	return &weatherCache{coll: coll}, nil
}

// cacheKey buckets coordinates to ~1 km so nearby searches share an entry.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

func (c *weatherCache) lookup(ctx context.Context, lat, lon float64) (cachedSample, bool) {
	if c == nil {
		return cachedSample{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc cachedSample
	if err := c.coll.FindOne(ctx, bson.M{"_id": cacheKey(lat, lon)}).Decode(&doc); err != nil {
		return cachedSample{}, false
	}
	return doc, true
}

func (c *weatherCache) store(ctx context.Context, lat, lon, dailyHours float64, source string) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	doc := cachedSample{
		Key:        cacheKey(lat, lon),
		DailyHours: dailyHours,
		Source:     source,
		FetchedAt:  time.Now().UTC(),
	}
	_, _ = c.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
}
