package config

import (
	"path/filepath"
	"time"
)

var BuildVersion = "0.0.0-dev"

const (
	DefaultContractAddress = "0xd5fe7E6eB04450095a078A6E31610F2D7617C205"
	DefaultAlertDelay      = 5 * time.Second
)

// Validation tags described here: https://pkg.go.dev/github.com/go-playground/validator/v10
type Config struct {
	Blockchain struct {
		EthNodeAddress  string        `env:"ETH_NODE_ADDRESS"  flag:"eth-node-address"  validate:"required,url"`
		ContractAddress string        `env:"CONTRACT_ADDRESS"  flag:"contract-address"  validate:"required,eth_addr" desc:"address of the deployed crowdfunding contract"`
		NoWaitMined     bool          `env:"ETH_NO_WAIT_MINED" flag:"eth-no-wait-mined" desc:"refresh right after the transaction is submitted instead of waiting for its receipt"`
		CallTimeout     time.Duration `env:"ETH_CALL_TIMEOUT"  flag:"eth-call-timeout"  desc:"bounds every user action, zero disables the timeout"`
	}
	Environment string `env:"ENVIRONMENT" flag:"environment"`
	Wallet      struct {
		RPCAddress   string        `env:"WALLET_RPC_ADDRESS"   flag:"wallet-rpc-address"   validate:"omitempty,url" desc:"json-rpc endpoint of the wallet that signs transactions, falls back to eth-node-address"`
		PollInterval time.Duration `env:"WALLET_POLL_INTERVAL" flag:"wallet-poll-interval" desc:"interval between account change checks"`
	}
	Refresh struct {
		Concurrency int `env:"REFRESH_CONCURRENCY" flag:"refresh-concurrency" validate:"omitempty,min=1,max=32" desc:"number of project reads in flight during a refresh"`
	}
	Alerts struct {
		DismissDelay time.Duration `env:"ALERT_DISMISS_DELAY" flag:"alert-dismiss-delay" desc:"alerts are hidden after this delay"`
		Max          int           `env:"ALERT_MAX"           flag:"alert-max"           validate:"omitempty,min=1"`
	}
	Log struct {
		Color        bool   `env:"LOG_COLOR"         flag:"log-color"`
		FolderPath   string `env:"LOG_FOLDER_PATH"   flag:"log-folder-path"   validate:"omitempty,dirpath" desc:"enables file logging and sets the folder path"`
		IsProd       bool   `env:"LOG_IS_PROD"       flag:"log-is-prod"       desc:"affects the format of the log output"`
		JSON         bool   `env:"LOG_JSON"          flag:"log-json"`
		LevelApp     string `env:"LOG_LEVEL_APP"     flag:"log-level-app"     validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
		LevelRPC     string `env:"LOG_LEVEL_RPC"     flag:"log-level-rpc"     validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
		LevelSession string `env:"LOG_LEVEL_SESSION" flag:"log-level-session" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	}
	Web struct {
		Address   string `env:"WEB_ADDRESS"    flag:"web-address"    validate:"required,hostname_port" desc:"http server address host:port"`
		PublicUrl string `env:"WEB_PUBLIC_URL" flag:"web-public-url" validate:"omitempty,url"          desc:"public url of the client, falls back to web-address if empty"`
	}
}

func (cfg *Config) SetDefaults() {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Blockchain

	if cfg.Blockchain.ContractAddress == "" {
		cfg.Blockchain.ContractAddress = DefaultContractAddress
	}

	// Wallet

	if cfg.Wallet.RPCAddress == "" {
		cfg.Wallet.RPCAddress = cfg.Blockchain.EthNodeAddress
	}
	if cfg.Wallet.PollInterval == 0 {
		cfg.Wallet.PollInterval = 2 * time.Second
	}

	// Refresh

	if cfg.Refresh.Concurrency == 0 {
		cfg.Refresh.Concurrency = 1
	}

	// Alerts

	if cfg.Alerts.DismissDelay == 0 {
		cfg.Alerts.DismissDelay = DefaultAlertDelay
	}
	if cfg.Alerts.Max == 0 {
		cfg.Alerts.Max = 16
	}

	// Log

	if cfg.Log.LevelApp == "" {
		cfg.Log.LevelApp = "debug"
	}
	if cfg.Log.LevelRPC == "" {
		cfg.Log.LevelRPC = "info"
	}
	if cfg.Log.LevelSession == "" {
		cfg.Log.LevelSession = "info"
	}

	// Web

	if cfg.Web.Address == "" {
		cfg.Web.Address = "0.0.0.0:8080"
	}
	if cfg.Web.PublicUrl == "" {
		cfg.Web.PublicUrl = "http://" + cfg.Web.Address
	}
}

// LogFilePath returns the application log file, empty if file logging is disabled
func (cfg *Config) LogFilePath() string {
	if cfg.Log.FolderPath == "" {
		return ""
	}
	return filepath.Join(cfg.Log.FolderPath, "crowdfund-client.log")
}

// GetSanitized returns a copy of the config with sensitive data removed
// explicitly adding each field here to avoid accidentally leaking sensitive data
func (cfg *Config) GetSanitized() interface{} {
	publicCfg := Config{}

	publicCfg.Blockchain.ContractAddress = cfg.Blockchain.ContractAddress
	publicCfg.Blockchain.NoWaitMined = cfg.Blockchain.NoWaitMined
	publicCfg.Blockchain.CallTimeout = cfg.Blockchain.CallTimeout
	publicCfg.Environment = cfg.Environment

	publicCfg.Wallet.PollInterval = cfg.Wallet.PollInterval

	publicCfg.Refresh.Concurrency = cfg.Refresh.Concurrency

	publicCfg.Alerts.DismissDelay = cfg.Alerts.DismissDelay
	publicCfg.Alerts.Max = cfg.Alerts.Max

	publicCfg.Log.Color = cfg.Log.Color
	publicCfg.Log.FolderPath = cfg.Log.FolderPath
	publicCfg.Log.IsProd = cfg.Log.IsProd
	publicCfg.Log.JSON = cfg.Log.JSON
	publicCfg.Log.LevelApp = cfg.Log.LevelApp
	publicCfg.Log.LevelRPC = cfg.Log.LevelRPC
	publicCfg.Log.LevelSession = cfg.Log.LevelSession

	publicCfg.Web.Address = cfg.Web.Address
	publicCfg.Web.PublicUrl = cfg.Web.PublicUrl

	return publicCfg
}
