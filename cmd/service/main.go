package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/workoutcal/internal"
	"github.com/2beens/workoutcal/internal/config"
	"github.com/2beens/workoutcal/internal/logging"
	"github.com/2beens/workoutcal/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	versionInfo, versionErr := tryGetLastCommitHash()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        cfg.SentryDSN,
		Release:          versionInfo,
		SentryServerName: "workoutcal",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("gateway backend: %s, profile backend: %s", cfg.GatewayBackend, cfg.ProfileBackend)

	if versionErr != nil {
		log.Tracef("failed to get last commit hash / version info: %s", versionErr)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	if cfg.RedisPassword == "" {
		log.Warnln("redis password not set. use WORKOUTCAL_REDIS_PASS")
	}

	if cfg.HoneycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	server, err := internal.NewServer(
		context.Background(),
		internal.NewServerParams{
			Config:      cfg,
			VersionInfo: versionInfo,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve()

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
