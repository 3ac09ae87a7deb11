package main

import (
	"log"

	"github.com/dhbw-wi22a/B2B-Backend/config"
	"github.com/dhbw-wi22a/B2B-Backend/jwt"
	"github.com/dhbw-wi22a/B2B-Backend/mailservice"
	"github.com/dhbw-wi22a/B2B-Backend/routers"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	jwt.SetKeyPaths(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)

	db, err := config.SetupMySQLConnection()
	if err != nil {
		log.Fatalf("unable to connect to database: %v", err)
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	rdb, err := config.SetupRedisConnection()
	if err != nil {
		log.Fatalf("unable to connect to redis: %v", err)
	}
	defer rdb.Close()

	mail := mailservice.NewClient(config.LoadMailServiceConfig())

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":3000"
	}

	router := routers.SetupRouters(db, rdb, mail)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
