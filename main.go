package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"push-fanout-service/conf"
	"push-fanout-service/controller"
	"push-fanout-service/major"
	"push-fanout-service/service/chat_feed_service"
	"push-fanout-service/service/fanout_service"
	"push-fanout-service/service/onesignal_service"
	"push-fanout-service/service/roomban_service"
	"push-fanout-service/service/subscription_service"
)

func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func initFanout() (*controller.Services, *chat_feed_service.Manager) {
	// 1. Room ban store
	banConfig := &roomban_service.Config{
		DBPath: conf.BanStoreDBPath,
	}
	if banConfig.DBPath == "" {
		banConfig.DBPath = roomban_service.DefaultConfig().DBPath
	}
	if err := roomban_service.InitGlobalService(banConfig); err != nil {
		log.Fatal().Err(err).Msg("open room ban store failed")
	}
	bans := roomban_service.GetGlobalService()

	// 2. Subscription cache over the relational store
	cache := subscription_service.NewCache(
		subscription_service.NewSQLStore(major.GetSqlDB()))
	if err := cache.Reload(context.Background()); err != nil {
		// An empty snapshot just means no pushes until the next reload.
		log.Error().Err(err).Msg("initial subscription load failed, starting empty")
	}

	// 3. Push gateway notifier
	gatewayConfig := &onesignal_service.Config{
		URL:     conf.PushGatewayURL,
		AppID:   conf.PushGatewayAppID,
		APIKey:  conf.PushGatewayAPIKey,
		Sound:   conf.PushGatewaySound,
		Timeout: parseDuration(conf.PushGatewayTimeout, onesignal_service.DefaultTimeout),
	}
	if err := gatewayConfig.Validate(); err != nil {
		log.Fatal().Err(err).Msg("push gateway config invalid")
	}
	notifier := onesignal_service.NewNotifier(gatewayConfig)

	// 4. Fan-out engine
	center := fanout_service.NewCenter(
		cache, bans, notifier,
		conf.FanoutSystemSenderID,
		parseDuration(conf.FanoutDispatchTimeout, 30*time.Second))

	// 5. Periodic cache refresh
	go cache.AutoReload(context.Background(),
		parseDuration(conf.FanoutReloadInterval, 5*time.Minute))

	// 6. Chat feed
	var feed *chat_feed_service.Manager
	if conf.ChatFeedEnabled {
		feedConfig := &chat_feed_service.Config{
			ServerURL: conf.ChatFeedServerURL,
			AuthKey:   conf.ChatFeedAuthKey,
			Path:      conf.ChatFeedPath,
			Timeout:   conf.ChatFeedTimeout,
		}
		feed = chat_feed_service.NewManager(feedConfig, center)
		if err := feed.Start(); err != nil {
			log.Error().Err(err).Msg("chat feed start failed, admin dispatch only")
		}
	} else {
		log.Info().Msg("chat feed disabled, admin dispatch only")
	}

	return &controller.Services{
		Cache:  cache,
		Center: center,
		Bans:   bans,
	}, feed
}

func parseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Str("value", durationStr).Dur("default", defaultDuration).
			Msg("bad duration in config, using default")
		return defaultDuration
	}
	return duration
}

// Package main
// @title Push Fanout Service API
// @version 1.0
// @description Chat notification fan-out service. Matches chat lines against subscriber filters and pushes batched notifications through the gateway.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Signature
func main() {
	var env string
	flag.StringVar(&env, "env", "mainnet", "env config: testnet, mainnet")
	flag.Parse()

	switch env {
	case "mainnet":
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	case "testnet":
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	default:
		conf.SystemEnvironmentEnum = conf.ExampleEnvironmentEnum
	}

	conf.InitConfig("")
	initLogging()

	fmt.Printf("run push-fanout-service, env: %s\n", env)

	major.InitSqlConfig()

	services, feed := initFanout()
	if feed != nil {
		defer feed.Stop()
	}

	controller.Run(services)
}
