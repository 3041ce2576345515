package handler

import (
	"net/http"

	"drone-delivery-api/internal/geocode"
	"drone-delivery-api/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Metrics instruments the router and serves the scrape endpoint.
type Metrics interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

type Deps struct {
	Sessions  SessionStore
	Geocoder  geocode.Geocoder
	Readiness Readiness
	Shipments ShipmentFinder

	// Optional; omitted in tests.
	Metrics   Metrics
	RateLimit gin.HandlerFunc
	Swagger   bool
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestID(), logger.RequestLogger())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"maps_loaded": d.Readiness.Ready(),
		})
	})

	geoCodeHandler := NewGeoCodeHandler(d.Geocoder, d.Readiness)
	reverseGeocodeHandler := NewReverseGeocodeHandler(d.Geocoder, d.Readiness)
	r.GET("/geocode", geoCodeHandler.GeoCode)
	r.GET("/reverse-geocode", reverseGeocodeHandler.ReverseGeocode)

	api := r.Group("/api")
	if d.RateLimit != nil {
		api.Use(d.RateLimit)
	}

	sessions := NewSessionHandler(d.Sessions)
	api.POST("/sessions", sessions.Create)

	sess := api.Group("/sessions/:id", sessions.Load)
	sess.GET("", sessions.Get)
	sess.DELETE("", sessions.Delete)
	sess.PATCH("/draft", sessions.UpdateDraft)
	sess.POST("/submit", sessions.Submit)
	sess.POST("/submit/cancel", sessions.CancelSubmit)
	sess.POST("/confirm-shipment", sessions.ConfirmShipment)

	loc := NewLocationHandler()
	sess.POST("/location/open", loc.Open)
	sess.POST("/location/search", loc.Search)
	sess.POST("/location/pin", loc.Pin)
	sess.POST("/location/current", loc.Current)
	sess.POST("/location/confirm", loc.Confirm)
	sess.POST("/location/accept", loc.Accept)
	sess.POST("/location/cancel", loc.Cancel)
	sess.POST("/location/close", loc.Close)

	tracking := NewTrackingHandler(d.Shipments)
	api.GET("/track", tracking.Track)
	api.GET("/views/package-details", tracking.PackageDetails)
	api.GET("/views/live-status", tracking.LiveStatus)
	api.GET("/views/delivery-location", tracking.DeliveryLocation)

	if d.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
