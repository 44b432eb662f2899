// README: Entry point; loads config, wires providers, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"googlemaps.github.io/maps"

	"midway/internal/ai"
	"midway/internal/config"
	"midway/internal/geocode"
	httptransport "midway/internal/http"
	"midway/internal/infra"
	"midway/internal/modules/meeting"
	"midway/internal/places"
	"midway/internal/routing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Routing.ORSKey == "" {
		log.Fatal("ORS_API_KEY is required")
	}
	if cfg.Google.MapsKey == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	geocoder := geocode.NewService(cfg.Geocode.BaseURL, cfg.Geocode.MinInterval, geocode.NewRedisCache(redisClient))

	var classifier ai.IntentClassifier
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		classifier = gemini
	} else {
		log.Printf("GEMINI_API_KEY not set, using keyword intent classifier")
		classifier = ai.NewKeywordClassifier()
	}

	mapsClient, err := maps.NewClient(maps.WithAPIKey(cfg.Google.MapsKey))
	if err != nil {
		log.Fatalf("google maps init: %v", err)
	}

	road := routing.NewORSClient(cfg.Routing.ORSBaseURL, cfg.Routing.ORSKey)
	transit := routing.NewGoogleTransitClient(mapsClient)
	agg := meeting.NewAggregator(road, transit)

	var venues meeting.VenueSearcher
	if cfg.Foursquare.APIKey != "" {
		venues = places.NewFoursquareService("", cfg.Foursquare.APIKey)
	} else {
		venues = places.NewGoogleService(mapsClient)
	}

	meetingSvc := meeting.NewService(agg, venues, cfg.Scoring)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:    meetingSvc,
		Resolver:   geocoder,
		Classifier: classifier,
		HTTP:       cfg.HTTP,
		RateLimit:  cfg.RateLimit,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
