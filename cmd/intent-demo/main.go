// README: CLI demo; runs the intent pipeline against an in-memory catalog, with live Gemini when a key is set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"manitas/internal/ai"
	"manitas/internal/modules/catalog"
	"manitas/internal/modules/intent"
)

// memCatalog serves a fixed service list so the demo runs without Postgres.
type memCatalog struct {
	entries []catalog.Entry
}

func (m *memCatalog) ListActive(ctx context.Context, category string, limit int) ([]catalog.Entry, error) {
	out := make([]catalog.Entry, 0, limit)
	for _, e := range m.entries {
		if !e.Active || (category != "" && e.Category != category) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memCatalog) GetByNameAndCategory(ctx context.Context, name, category string) (*catalog.Entry, error) {
	for _, e := range m.entries {
		if strings.EqualFold(e.Name, name) && e.Category == category {
			entry := e
			return &entry, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func i64(v int64) *int64 { return &v }

func demoCatalog() *memCatalog {
	return &memCatalog{entries: []catalog.Entry{
		{ID: "svc-fugas", Name: "Reparación de Fugas", Category: "plomeria", PriceType: catalog.PriceVariable, MinPrice: 350, MaxPrice: i64(1200), Popularity: 120, Active: true},
		{ID: "svc-limpieza", Name: "Limpieza Profunda", Category: "limpieza", PriceType: catalog.PriceFixed, MinPrice: 800, Popularity: 100, Active: true},
		{ID: "svc-drenaje", Name: "Destape de Drenaje", Category: "plomeria", PriceType: catalog.PriceVariable, MinPrice: 400, MaxPrice: i64(900), Popularity: 90, Active: true},
		{ID: "svc-lampara", Name: "Instalación de Lámpara", Category: "electricidad", PriceType: catalog.PriceFixed, MinPrice: 250, Popularity: 80, Active: true},
		{ID: "svc-revision", Name: "Revisión de Instalación Eléctrica", Category: "electricidad", PriceType: catalog.PriceVariable, MinPrice: 300, MaxPrice: i64(700), Popularity: 70, Active: true},
		{ID: "svc-cerradura", Name: "Cambio de Cerradura", Category: "cerrajeria", PriceType: catalog.PriceFixed, MinPrice: 450, Popularity: 65, Active: true},
		{ID: "svc-aire", Name: "Instalación de Aire Acondicionado", Category: "climatizacion", PriceType: catalog.PriceFixed, MinPrice: 600, Popularity: 55, Active: true},
	}}
}

func main() {
	cat := demoCatalog()

	var remote intent.RemoteClassifier
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		provider, err := ai.NewGeminiProvider(context.Background(), apiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer provider.Close()
		remote = intent.NewRemoteResolver(provider, cat, 8*time.Second)
		fmt.Println("(remote model tier enabled)")
	} else {
		fmt.Println("(GEMINI_API_KEY not set, rule table and local classifier only)")
	}

	svc := intent.NewService(intent.DefaultRules(), cat, remote, nil)

	descriptions := os.Args[1:]
	if len(descriptions) == 0 {
		descriptions = []string{
			"tengo una fuga de agua en el baño",
			"quiero instalar una lámpara en la sala",
			"se tapó el drenaje de la cocina",
			"huele a quemado cerca del apagador",
			"necesito una limpieza profunda",
		}
	}

	for _, d := range descriptions {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		result := svc.AnalyzeProblem(ctx, d)
		cancel()

		fmt.Printf("\nUsuario: %s\n", d)
		if result.DetectedService != nil {
			fmt.Printf("  Servicio:   %s (%s)\n", result.DetectedService.Name, result.DetectedService.Category)
			fmt.Printf("  Precio:     %s\n", result.DetectedService.PriceRange().Label())
		} else {
			fmt.Println("  Servicio:   (sin coincidencia)")
		}
		fmt.Printf("  Confianza:  %.2f\n", result.Confidence)
		fmt.Printf("  Urgencia:   %s\n", result.PreFilled.Urgencia)
		fmt.Printf("  Razón:      %s\n", result.Reasoning)
		for _, alt := range result.Alternatives {
			fmt.Printf("  Alternativa: %s\n", alt.Name)
		}
	}
}
