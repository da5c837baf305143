package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-safety/internal/alerts"
	"github.com/ukydev/vehicle-safety/internal/db"
	"github.com/ukydev/vehicle-safety/internal/decode"
	"github.com/ukydev/vehicle-safety/internal/handlers"
	"github.com/ukydev/vehicle-safety/internal/lookup"
	"github.com/ukydev/vehicle-safety/internal/middleware"
	"github.com/ukydev/vehicle-safety/internal/safety"
	"github.com/ukydev/vehicle-safety/internal/session"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}

	if level, err := log.ParseLevel(envOr("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Info("Connected to MongoDB")

	database := client.Database(envOr("MONGO_DB", "vehicle_safety"))
	maintenance := &db.MongoMaintenanceCollection{Collection: database.Collection("maintenance")}
	contacts := &db.MongoContactCollection{Collection: database.Collection("contacts")}

	decoder := decode.NewClient(envOr("DECODE_BASE_URL", "https://vpic.nhtsa.dot.gov/api"))
	source := safety.NewHTTPSourceClient(
		envOr("RECALLS_BASE_URL", "https://api.nhtsa.gov/recalls/recallsByVehicle"),
		envOr("COMPLAINTS_BASE_URL", "https://api.nhtsa.gov/complaints/complaintsByVehicle"),
		envOr("INVESTIGATIONS_BASE_URL", "https://api.nhtsa.gov/investigations/investigationsByVehicle"),
	)
	newBundler := func() lookup.Bundler { return safety.NewAggregator(source) }

	var publisher alerts.Publisher = alerts.NoopPublisher{}
	if broker := os.Getenv("MQTT_BROKER_URL"); broker != "" {
		mqttPublisher, err := alerts.NewMQTTPublisher(broker, "vehicle-safety-api")
		if err != nil {
			log.WithError(err).Warn("MQTT unavailable, safety alerts disabled")
		} else {
			defer mqttPublisher.Close()
			publisher = mqttPublisher
		}
	}

	sessions := session.NewService()
	service := lookup.NewService(contacts, maintenance, decoder, newBundler, publisher)

	contactHandler := handlers.NewContactHandler(contacts, sessions)
	lookupHandler := handlers.NewLookupHandler(service)
	sessionMiddleware := middleware.NewSessionMiddleware(sessions)
	rateLimit := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/session/contact", contactHandler.RecordContact)
	mux.HandleFunc("/api/lookup", lookupHandler.Lookup)
	mux.HandleFunc("/api/session/reset", lookupHandler.Reset)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	handler := rateLimit.RateLimit(60, 60)(sessionMiddleware.Require(mux))

	port := envOr("PORT", "8080")
	log.Infof("HTTP server listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
