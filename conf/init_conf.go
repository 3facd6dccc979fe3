package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

var (
	Net  string = ""
	Port string = ""

	LogLevel string = ""

	RdsDsn          string = ""
	RdsMaxOpenConns int    = 0
	RdsMaxIdleConns int    = 0

	// Admin API authentication (secp256k1 signature headers)
	AdminPublicKey string = ""

	// Push gateway (OneSignal-compatible endpoint)
	PushGatewayURL     string = ""
	PushGatewayAppID   string = ""
	PushGatewayAPIKey  string = ""
	PushGatewaySound   string = ""
	PushGatewayTimeout string = ""

	// Fan-out engine
	FanoutSystemSenderID  int64  = 0
	FanoutReloadInterval  string = ""
	FanoutDispatchTimeout string = ""

	// Room ban store
	BanStoreDBPath string = ""

	// Chat feed client
	ChatFeedEnabled   bool   = false
	ChatFeedServerURL string = ""
	ChatFeedAuthKey   string = ""
	ChatFeedPath      string = ""
	ChatFeedTimeout   int    = 0
)

func InitConfig(configPath string) {
	if configPath == "" {
		configPath = GetYaml()
	}
	fmt.Printf("configPath:%s\n", configPath)
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}

	Net = viper.GetString("net")
	Port = viper.GetString("port")

	LogLevel = viper.GetString("log_level")

	RdsDsn = viper.GetString("rds.dsn")
	RdsMaxOpenConns = viper.GetInt("rds.max_open_conns")
	RdsMaxIdleConns = viper.GetInt("rds.max_idle_conns")

	AdminPublicKey = viper.GetString("admin.public_key")

	PushGatewayURL = viper.GetString("push_gateway.url")
	PushGatewayAppID = viper.GetString("push_gateway.app_id")
	PushGatewayAPIKey = viper.GetString("push_gateway.api_key")
	PushGatewaySound = viper.GetString("push_gateway.sound")
	PushGatewayTimeout = viper.GetString("push_gateway.timeout")

	FanoutSystemSenderID = viper.GetInt64("fanout.system_sender_id")
	FanoutReloadInterval = viper.GetString("fanout.reload_interval")
	FanoutDispatchTimeout = viper.GetString("fanout.dispatch_timeout")

	BanStoreDBPath = viper.GetString("ban_store.db_path")

	ChatFeedEnabled = viper.GetBool("chat_feed.enabled")
	ChatFeedServerURL = viper.GetString("chat_feed.server_url")
	ChatFeedAuthKey = viper.GetString("chat_feed.auth_key")
	ChatFeedPath = viper.GetString("chat_feed.path")
	ChatFeedTimeout = viper.GetInt("chat_feed.timeout")
}
