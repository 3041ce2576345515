package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "drone-delivery-api/docs"
	"drone-delivery-api/internal/config"
	"drone-delivery-api/internal/db"
	"drone-delivery-api/internal/geocode"
	"drone-delivery-api/internal/handler"
	"drone-delivery-api/internal/logger"
	"drone-delivery-api/internal/metrics"
	"drone-delivery-api/internal/middleware"
	"drone-delivery-api/internal/repository"
	"drone-delivery-api/internal/service"
	"drone-delivery-api/internal/session"
	"drone-delivery-api/internal/supabase"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

//	@title			Drone Delivery API
//	@version		1.0
//	@description	Shipment booking, location selection and tracking for the drone delivery front-end.
//	@BasePath		/

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	logger.Init(config.AppEnv, config.LogLevel)
	if config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	httpClient := &http.Client{Timeout: config.HTTPClientTimeout}

	// Geocoding collaborator
	readiness := geocode.NewReadiness(false)
	var geocoder geocode.Geocoder

	switch config.GeocoderProvider {
	case "postgis":
		if err := db.RunMigrations(config.DBSource); err != nil {
			log.Fatal().Err(err).Msg("cannot migrate gazetteer")
		}

		conn, err := pgxpool.New(ctx, config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewRepository(conn)
		geocoder = geocode.NewGazetteer(
			service.NewGeoCodeService(repo),
			service.NewReverseGeoCodeService(repo),
		)
		go warmUp(ctx, conn, readiness)
	default:
		google, err := geocode.NewGoogleFromKey(config.MapsAPIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot create maps client")
		}
		geocoder = google
		readiness.MarkReady()
	}

	// Persistence collaborator
	shipments, err := supabase.NewClient(config.SupabaseURL, config.SupabaseAnonKey, config.SupabaseTable, httpClient)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create supabase client")
	}
	if err := shipments.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("supabase not reachable, shipments will fail until it is")
	}

	sessions := session.NewStore(session.Deps{
		Geocoder:   geocoder,
		Readiness:  readiness,
		Shipments:  shipments,
		OnLookup:   m.ObserveLookup,
		OnShipment: m.ObserveShipment,
		OnResize:   m.SetSessions,
	}, config.SessionCapacity, config.SessionTTL)

	limiter := middleware.NewLimiter(config.RateLimitRPS, config.RateLimitBurst)
	go limiter.Cleanup(ctx, time.Minute)

	r := handler.NewRouter(handler.Deps{
		Sessions:  sessions,
		Geocoder:  geocoder,
		Readiness: readiness,
		Shipments: shipments,
		Metrics:   m,
		RateLimit: limiter.Middleware(),
		Swagger:   !config.Production(),
	})

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Str("geocoder", config.GeocoderProvider).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}

// warmUp marks the gazetteer ready once the database answers. Until then
// lookups report that maps are still loading.
func warmUp(ctx context.Context, conn *pgxpool.Pool, readiness *geocode.Readiness) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		err := conn.Ping(ctx)
		if err == nil {
			readiness.MarkReady()
			log.Info().Msg("gazetteer ready")
			return
		}
		log.Warn().Err(err).Msg("gazetteer not reachable yet")

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
