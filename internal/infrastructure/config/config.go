package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,       default=8080"`
	Env        string `env:"ENV,        default=development"`
	AuthSecret string `env:"AUTH_SECRET"`
	LogLevel   string `env:"LOG_LEVEL,  default=info"`

	// SessionCookie is the cookie name the auth provider issues sessions
	// under. The route guard checks only its presence.
	SessionCookie string `env:"SESSION_COOKIE, default=landing.session_token"`

	// AdminRoles is the comma-separated set of roles the admin RPC gate
	// accepts. Exactly "admin" by default; super-admin must be opted in
	// explicitly (page navigation treats it as admin-equivalent regardless).
	AdminRoles string `env:"ADMIN_ROLES, default=admin"`

	SessionCacheTTL time.Duration `env:"SESSION_CACHE_TTL, default=5m"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=landing"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// AdminRoleList splits AdminRoles into the explicit role set handed to the
// admin service.
func (c *Config) AdminRoleList() []string {
	parts := strings.Split(c.AdminRoles, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
