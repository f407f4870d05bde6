// Package main issues or revokes workoutcal session tokens in redis.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/2beens/workoutcal/internal/auth"
	"github.com/2beens/workoutcal/internal/config"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	user := flag.String("user", "", "user id to issue a token for")
	revoke := flag.String("revoke", "", "token to revoke")
	ttl := flag.Duration("ttl", auth.DefaultTTL, "token lifetime")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis: %s", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	authService := auth.NewService(*ttl, rdb)
	switch {
	case *revoke != "":
		if err := authService.Revoke(ctx, *revoke); err != nil {
			log.Fatalf("revoke: %s", err)
		}
		log.Infoln("token revoked")
	case *user != "":
		token, err := authService.Issue(ctx, *user, time.Now())
		if err != nil {
			log.Fatalf("issue: %s", err)
		}
		fmt.Println(token)
	default:
		log.Fatalln("set -user or -revoke")
	}
}
