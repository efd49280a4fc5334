// README: Geocoder backed by the Google Maps Geocoding API with a Redis cache.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"

	"manitas/internal/types"
)

const (
	geocodeKeyPrefix = "location:geocode:%s"
	geocodeTTL       = 7 * 24 * time.Hour
)

// Geocoder resolves address text to coordinates. Results are cached in Redis:
// address books are small and addresses rarely move.
type Geocoder struct {
	client *maps.Client
	redis  *redis.Client
	region string
}

func NewGeocoder(apiKey string, redisClient *redis.Client) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client, redis: redisClient, region: "mx"}, nil
}

// Geocode resolves one address string to a coordinate pair.
func (g *Geocoder) Geocode(ctx context.Context, address string) (types.Point, error) {
	key := fmt.Sprintf(geocodeKeyPrefix, address)
	if g.redis != nil {
		if raw, err := g.redis.Get(ctx, key).Result(); err == nil {
			var p types.Point
			if err := json.Unmarshal([]byte(raw), &p); err == nil {
				return p, nil
			}
		}
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	})
	if err != nil {
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("no geocoding result for %q", address)
	}

	p := types.Point{
		Lat: results[0].Geometry.Location.Lat,
		Lng: results[0].Geometry.Location.Lng,
	}
	if g.redis != nil {
		if raw, err := json.Marshal(p); err == nil {
			_ = g.redis.Set(ctx, key, raw, geocodeTTL).Err()
		}
	}
	return p, nil
}
