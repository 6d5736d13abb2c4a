package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	// QueryTimeoutSeconds bounds every repository operation; expiry is
	// surfaced as a transient (retryable) error.
	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type EmailConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	SMTPHost     string   `mapstructure:"smtp_host"`
	SMTPPort     int      `mapstructure:"smtp_port"`
	SMTPUser     string   `mapstructure:"smtp_user"`
	SMTPPassword string   `mapstructure:"smtp_password"`
	FromAddress  string   `mapstructure:"from_address"`
	FromName     string   `mapstructure:"from_name"`
	AlertsTo     []string `mapstructure:"alerts_to"`
}

type NotificationConfig struct {
	// BufferSize is the event channel depth of the in-process dispatcher.
	BufferSize int `mapstructure:"buffer_size"`
	// ClientQueueSize is the per-websocket-client send queue; clients that
	// fall behind are dropped rather than blocking the hub.
	ClientQueueSize int `mapstructure:"client_queue_size"`
}
