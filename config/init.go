package config

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

func InitApp() (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	AppConfig = Load()

	if AppConfig.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Session-ID", "X-Webhook-Signature")
	configCors.AddExposeHeaders("X-Session-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	if err := initComponents(AppConfig); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	m := melody.New()

	c := cron.New(cron.WithLocation(time.UTC))

	return router, m, c, nil
}

func initComponents(cfg *Config) error {
	var err error
	DB, err = ConnectDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %v", err)
	}

	RedisClient, err = ConnectRedis(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("All components initialized successfully")
	return nil
}
