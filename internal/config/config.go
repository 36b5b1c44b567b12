package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/creasty/defaults"
)

type Configuration struct {
	Database  Database  `mapstructure:"database"`
	Inventory Inventory `mapstructure:"inventory"`
	Server    Server    `mapstructure:"server"`
	LogFormat string    `mapstructure:"log_format" default:"console"`
	LogLevel  string    `mapstructure:"log_level" default:"info"`
}

type Database struct {
	Driver   string `mapstructure:"driver" default:"postgres"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"5432"`
	Name     string `mapstructure:"name" default:"netdisco"`
	User     string `mapstructure:"user" default:"netdisco"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode" default:"disable"`
}

type Inventory struct {
	InputsFile string `mapstructure:"inputs_file" default:"inv.yml"`
	Format     string `mapstructure:"format" default:"json"`
	Pretty     bool   `mapstructure:"pretty"`
}

type Server struct {
	ServerMode string `mapstructure:"mode" default:"dev"`
	HTTPPort   int    `mapstructure:"http_port" default:"8000"`
}

// NewConfigurationWithDefaults returns a Configuration with every default applied.
func NewConfigurationWithDefaults() *Configuration {
	c := &Configuration{}
	defaults.MustSet(c)
	return c
}

// DataSourceName returns the connection string handed to the driver.
// An explicit DSN wins. For postgres a URL is assembled from the parts,
// other drivers use Name as a file path.
func (d Database) DataSourceName() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case "postgres", "pgx":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     d.Host + ":" + strconv.Itoa(d.Port),
			Path:     "/" + d.Name,
			RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
		}
		if d.Password == "" {
			u.User = url.User(d.User)
		}
		return u.String()
	default:
		return d.Name
	}
}

// DebugMap returns the configuration as a map safe for logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"Database": map[string]any{
			"Driver":   c.Database.Driver,
			"DSN":      redact(c.Database.DSN),
			"Host":     c.Database.Host,
			"Port":     c.Database.Port,
			"Name":     c.Database.Name,
			"User":     c.Database.User,
			"Password": redact(c.Database.Password),
			"SSLMode":  c.Database.SSLMode,
		},
		"Inventory": map[string]any{
			"InputsFile": c.Inventory.InputsFile,
			"Format":     c.Inventory.Format,
			"Pretty":     c.Inventory.Pretty,
		},
		"Server": map[string]any{
			"ServerMode": c.Server.ServerMode,
			"HTTPPort":   c.Server.HTTPPort,
		},
		"LogFormat": c.LogFormat,
		"LogLevel":  c.LogLevel,
	}
}

func redact(s string) string {
	if s == "" {
		return "(empty)"
	}
	return fmt.Sprintf("(sensitive, %d bytes)", len(s))
}
