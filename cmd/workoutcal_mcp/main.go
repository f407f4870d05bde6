// Package main runs the workoutcal MCP server over stdio for a single user.
// The backend also serves it per authenticated user at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/workoutcal/internal/bodyparams"
	"github.com/2beens/workoutcal/internal/config"
	"github.com/2beens/workoutcal/internal/db"
	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/internal/gateway/postgres"
	"github.com/2beens/workoutcal/internal/gateway/sqlite"
	workoutcalmcp "github.com/2beens/workoutcal/internal/mcp"
	"github.com/2beens/workoutcal/internal/session"
	"github.com/2beens/workoutcal/internal/workout"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	user := flag.String("user", "", "user id whose data is exposed, defaults to dev_user_id")
	flag.Parse()

	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	userID := *user
	if userID == "" {
		userID = cfg.DevUserID
	}
	if userID == "" {
		log.Fatalln("no user: set -user or dev_user_id")
	}

	ctx := context.Background()
	var store interface {
		gateway.RowStore
		gateway.ProfileStore
	}
	var schemaRepo workoutcalmcp.SchemaRepo
	switch cfg.GatewayBackend {
	case config.BackendPostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: cfg.PostgresPassword,
		})
		if err != nil {
			log.Fatalf("db pool: %v", err)
		}
		defer dbPool.Close()
		store = postgres.NewStore(dbPool)
		schemaRepo = workoutcalmcp.NewPoolSchemaRepo(dbPool)
	default:
		sqliteStore, err := sqlite.Open(cfg.SQLitePath, workout.TableWorkouts)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		defer func() {
			if err := sqliteStore.Close(); err != nil {
				log.Errorf("close sqlite: %s", err)
			}
		}()
		store = sqliteStore
	}

	sessions := session.NewRegistry(session.NewRegistryParams{
		RowStore:     store,
		ProfileStore: store,
		Definitions:  bodyparams.DefaultDefinitions(),
	})
	server := workoutcalmcp.NewServer(sessions, schemaRepo, userID)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Errorf("mcp server: %s", err)
	}
}
