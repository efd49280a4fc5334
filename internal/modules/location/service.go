// README: Location service; prioritized fallback chain with coverage validation.
package location

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"manitas/internal/config"
	"manitas/internal/types"
)

var ErrBadRequest = errors.New("location: bad request")

// maxProfileDriftKm bounds how far a cached profile location may sit from the
// configured city center before it is treated as stale (a trip, a moved
// device) and skipped. Device-supplied coordinates are fresh and exempt.
const maxProfileDriftKm = 300.0

// lastKnownStore is the slice of Store the fallback chain needs; tests
// substitute an in-memory fake.
type lastKnownStore interface {
	GetLastKnown(ctx context.Context, uid string) (types.Point, error)
	SetLastKnown(ctx context.Context, uid string, p types.Point) error
	SaveAddress(ctx context.Context, a Address) error
	ListAddresses(ctx context.Context, uid string) ([]Address, error)
	DeleteAddress(ctx context.Context, uid string, id types.ID) error
}

// geocoder is implemented by Geocoder; nil-able so the service degrades when
// no Maps credential is configured.
type geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
}

// Service resolves a usable location through a prioritized chain:
// device-supplied coordinates, then the cached profile location, then the
// configured default city center. Resolve never fails; the terminal step of
// the chain is a constant.
type Service struct {
	store    lastKnownStore
	geocoder geocoder
	coverage BoundingBox
	fallback types.Point
}

func NewService(store lastKnownStore, geo geocoder, cfg config.CoverageConfig) *Service {
	return &Service{
		store:    store,
		geocoder: geo,
		coverage: BoundingBox{
			MinLat: cfg.MinLat, MaxLat: cfg.MaxLat,
			MinLng: cfg.MinLng, MaxLng: cfg.MaxLng,
		},
		fallback: types.Point{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng},
	}
}

// ResolveRequest carries the optional inputs of the fallback chain.
type ResolveRequest struct {
	UID    string
	Device *types.Point
}

// Resolve walks the fallback chain and tags the result with its source and
// coverage flag. Store failures are logged and skipped, never surfaced.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) Resolved {
	if req.Device != nil {
		if req.UID != "" {
			if err := s.store.SetLastKnown(ctx, req.UID, *req.Device); err != nil {
				log.Printf("location: caching device position failed: %v", err)
			}
		}
		return s.resolved(*req.Device, SourceDevice)
	}

	if req.UID != "" {
		p, err := s.store.GetLastKnown(ctx, req.UID)
		switch {
		case err == nil && distanceKm(p, s.fallback) <= maxProfileDriftKm:
			return s.resolved(p, SourceProfile)
		case err == nil:
			log.Printf("location: cached position for %s is %.0fkm from the city center, ignoring",
				req.UID, distanceKm(p, s.fallback))
		case !errors.Is(err, ErrNotFound):
			log.Printf("location: profile lookup failed for %s: %v", req.UID, err)
		}
	}

	return s.resolved(s.fallback, SourceDefault)
}

// SaveAddress stores an address-book entry, geocoding the text when a
// geocoder is configured. Geocoding failures degrade to a text-only address.
func (s *Service) SaveAddress(ctx context.Context, uid, label, text string) (Address, error) {
	uid, label, text = strings.TrimSpace(uid), strings.TrimSpace(label), strings.TrimSpace(text)
	if uid == "" || text == "" {
		return Address{}, ErrBadRequest
	}

	a := Address{
		ID:        types.NewID(),
		UID:       uid,
		Label:     label,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if s.geocoder != nil {
		if p, err := s.geocoder.Geocode(ctx, text); err == nil {
			a.Position = &p
		} else {
			log.Printf("location: geocode %q failed: %v", text, err)
		}
	}

	if err := s.store.SaveAddress(ctx, a); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (s *Service) ListAddresses(ctx context.Context, uid string) ([]Address, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListAddresses(ctx, uid)
}

func (s *Service) DeleteAddress(ctx context.Context, uid string, id types.ID) error {
	if strings.TrimSpace(uid) == "" || id == "" {
		return ErrBadRequest
	}
	return s.store.DeleteAddress(ctx, uid, id)
}

func (s *Service) resolved(p types.Point, src Source) Resolved {
	return Resolved{
		Position:   p,
		Source:     src,
		InCoverage: s.coverage.Contains(p),
	}
}
