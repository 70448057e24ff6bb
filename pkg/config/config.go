package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Redis RedisConfig
	Log   LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // zona IANA usada para calcular "hoy" cuando el dueño no tiene una propia
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool // aplica migrations/ al arrancar la API
	MaxConns    int  // tamaño máximo del pool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins string // orígenes CORS separados por coma; vacío = cualquiera sin credenciales
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configuración del feed de cambios. Addr vacío = feed en memoria (un solo proceso).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay que usar Redis pub/sub para las suscripciones en vivo.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string // trace, debug, info, warn, error
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	// .env opcional: godotenv no pisa variables ya definidas en el entorno.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gymdesk-api"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Argentina/Buenos_Aires"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "gymdesk"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "gymdesk-api"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			AllowedOrigins: getString(v, "HTTP_ALLOWED_ORIGINS", ""),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	if cfg.App.Env == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
