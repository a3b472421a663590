// doorsentry - biometric door-lock backend
//
// This is the main entry point for the doorsentry service: the back end
// for a fingerprint-controlled door lock. It coordinates enrollment and
// deletion with the lock controller through a relay, records device
// access reports behind a shared-secret gate, and serves the admin
// dashboard API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/doorsentry/core/migrations"

	"github.com/doorsentry/core/internal/api"
	"github.com/doorsentry/core/internal/auth"
	"github.com/doorsentry/core/internal/event"
	"github.com/doorsentry/core/internal/identity"
	"github.com/doorsentry/core/internal/infrastructure/config"
	"github.com/doorsentry/core/internal/infrastructure/database"
	"github.com/doorsentry/core/internal/infrastructure/influxdb"
	"github.com/doorsentry/core/internal/infrastructure/logging"
	"github.com/doorsentry/core/internal/infrastructure/mqtt"
	"github.com/doorsentry/core/internal/relay"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting doorsentry",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Seed the initial admin on first boot
	adminRepo := auth.NewAdminRepository(db.DB)
	seedPassword, err := auth.SeedAdmin(ctx, adminRepo, log.Logger)
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	if seedPassword != "" {
		// One-time display; change it after first login
		fmt.Fprintf(os.Stdout, "Initial admin password: %s\n", seedPassword)
	}

	// Connect to MQTT broker (only needed for the MQTT relay transport)
	var mqttClient *mqtt.Client
	if cfg.Relay.Transport == config.RelayTransportMQTT {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	}

	// Build the relay emitter for the configured transport
	emitter, err := buildEmitter(cfg, mqttClient, log)
	if err != nil {
		return fmt.Errorf("creating relay emitter: %w", err)
	}
	log.Info("relay emitter ready", "transport", string(cfg.Relay.Transport))

	// Connect to InfluxDB (optional access-event mirror)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Wire the domain layer
	identityRepo := identity.NewRepository(db.DB)
	coordinator := identity.NewCoordinator(identityRepo, emitter, log.Logger)
	eventRepo := event.NewRepository(db.DB)
	ingestor := event.NewIngestor(eventRepo, influxClient, log.Logger)

	// Start the API server
	server, err := api.New(api.Deps{
		Config:      cfg.Server,
		WS:          cfg.WebSocket,
		Security:    cfg.Security,
		Logger:      log,
		Coordinator: coordinator,
		Identities:  identityRepo,
		Ingestor:    ingestor,
		Events:      eventRepo,
		Admins:      adminRepo,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, server, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if connected)
	// 4. Database

	log.Info("doorsentry stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses DOORSENTRY_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("DOORSENTRY_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// buildEmitter creates the relay emitter for the configured transport.
func buildEmitter(cfg *config.Config, mqttClient *mqtt.Client, log *logging.Logger) (relay.Emitter, error) {
	switch cfg.Relay.Transport {
	case config.RelayTransportHTTP:
		return relay.NewHTTPEmitter(cfg.Relay.HTTP, log.Logger)
	case config.RelayTransportMQTT:
		//nolint:gosec // G115: qos validated to 0..2 by config.Validate
		return relay.NewMQTTEmitter(mqttClient, cfg.Relay.DeviceID, byte(cfg.MQTT.QoS), log.Logger)
	default:
		return nil, fmt.Errorf("unknown relay transport %q", cfg.Relay.Transport)
	}
}

// healthCheck verifies all infrastructure connections are healthy.
// mqttClient and influxClient may be nil when not configured.
func healthCheck(ctx context.Context, db *database.DB, server *api.Server, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
