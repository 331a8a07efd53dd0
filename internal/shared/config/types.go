package config

import "fmt"

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds database connection settings. Driver selects mysql
// for production or sqlite for small single-host deployments; Path is the
// sqlite database file.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// EmailConfig holds SMTP settings for payment confirmation emails.
type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	AdminAddress string `mapstructure:"admin_address"`
}

// RedisConfig holds Redis settings used by the poll-endpoint rate limiter.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig holds operator token settings for the manual verify endpoint.
type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

// RateLimitConfig holds limits for the public check-order endpoint.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// GatewayConfig holds the LLD gateway settings. Immutable after load.
type GatewayConfig struct {
	// Network selects mainnet or testnet and drives the derived base URLs.
	Network         string `mapstructure:"network"`
	MerchantAddress string `mapstructure:"merchant_address"`

	// LLDRate is an optional manual USD-per-LLD override. Empty means
	// auto-fetch from the price-quote API.
	LLDRate string `mapstructure:"lld_rate"`

	// FallbackRate is used when no manual rate is set and the price-quote
	// API fails. Defaults to "1.0", which can massively under- or
	// overcharge; operators should set it deliberately.
	FallbackRate string `mapstructure:"fallback_rate"`

	// PublicKey is the PEM-encoded RSA key used to verify webhook signatures.
	PublicKey string `mapstructure:"public_key"`

	// WebhookURL is embedded in the gateway link so the payment page can
	// push a completion notification back to us.
	WebhookURL string `mapstructure:"webhook_url"`

	// SuccessURL and FailureURL are the storefront pages the payment page
	// redirects to. The order id is appended to SuccessURL as a query param.
	SuccessURL string `mapstructure:"success_url"`
	FailureURL string `mapstructure:"failure_url"`

	// DebugMode disables webhook signature enforcement. Testing only.
	DebugMode bool `mapstructure:"debug_mode"`

	// Optional explicit overrides for the derived base URLs.
	GatewayBase  string `mapstructure:"gateway_base"`
	APIBase      string `mapstructure:"api_base"`
	ExplorerBase string `mapstructure:"explorer_base"`
}

func (c *GatewayConfig) IsTestnet() bool {
	return c.Network == NetworkTestnet
}

// GatewayBaseURL returns the wallet payment-page base URL.
func (c *GatewayConfig) GatewayBaseURL() string {
	if c.GatewayBase != "" {
		return c.GatewayBase
	}
	if c.IsTestnet() {
		return "https://testnet.liberland.org/home/wallet/gateway/"
	}
	return "https://blockchain.liberland.org/home/wallet/gateway/"
}

// APIBaseURL returns the chain-index service base URL.
func (c *GatewayConfig) APIBaseURL() string {
	if c.APIBase != "" {
		return c.APIBase
	}
	if c.IsTestnet() {
		return "https://staging.api.blockchain.liberland.org"
	}
	return "https://api.blockchain.liberland.org"
}

// ExplorerBaseURL returns the block explorer base URL used in emails and notes.
func (c *GatewayConfig) ExplorerBaseURL() string {
	if c.ExplorerBase != "" {
		return c.ExplorerBase
	}
	if c.IsTestnet() {
		return "https://testnet.liberland.org"
	}
	return "https://blockchain.liberland.org"
}

// NetworkName returns the human-readable network name.
func (c *GatewayConfig) NetworkName() string {
	if c.IsTestnet() {
		return "Testnet"
	}
	return "Mainnet"
}
