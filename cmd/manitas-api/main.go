// README: Entry point; loads config, wires the intent pipeline and module services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"manitas/internal/ai"
	"manitas/internal/config"
	httptransport "manitas/internal/http"
	"manitas/internal/infra"
	"manitas/internal/modules/catalog"
	"manitas/internal/modules/intent"
	"manitas/internal/modules/location"
	"manitas/internal/modules/request"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	catalogStore := catalog.NewStore(dbPool)
	catalogSvc := catalog.NewService(catalogStore, redisClient)

	// Remote tiers are mutually exclusive: Gemini when a key is configured,
	// the mediation API otherwise. Neither is required.
	var remote, mediation intent.RemoteClassifier
	if cfg.Intent.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.Intent.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer provider.Close()
		remote = intent.NewRemoteResolver(provider, catalogSvc, cfg.Intent.RemoteTimeout)
		log.Println("intent: remote model tier enabled")
	} else if cfg.Intent.MediationURL != "" {
		mediation = intent.NewMediationClient(cfg.Intent.MediationURL)
		log.Println("intent: mediation tier enabled")
	} else {
		log.Println("intent: no remote tier configured, local classifier only")
	}
	intentSvc := intent.NewService(intent.DefaultRules(), catalogSvc, remote, mediation)

	locationStore := location.NewStore(dbPool, redisClient)
	var locationSvc *location.Service
	if cfg.Maps.APIKey != "" {
		geo, err := location.NewGeocoder(cfg.Maps.APIKey, redisClient)
		if err != nil {
			log.Fatalf("geocoder init: %v", err)
		}
		locationSvc = location.NewService(locationStore, geo, cfg.Coverage)
	} else {
		locationSvc = location.NewService(locationStore, nil, cfg.Coverage)
	}

	requestStore := request.NewStore(dbPool)
	requestSvc := request.NewService(requestStore)

	handler := httptransport.NewRouter(httptransport.ServerDeps{
		Intent:   intentSvc,
		Catalog:  catalogSvc,
		Location: locationSvc,
		Requests: requestSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
