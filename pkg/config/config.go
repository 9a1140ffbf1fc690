package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Draft DraftConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Locale   string // idioma del texto compartible y del PDF (es, en...)
	Storage  string // postgres | memory
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
	MaxConns    int
	ForceIPv4   bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
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
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DraftConfig parámetros de las sesiones de borrador.
type DraftConfig struct {
	AutosaveQuiet time.Duration // inactividad antes del guardado local
	CommitTimeout time.Duration // límite para guardar/enviar al servicio de registros
}

// Load lee la configuración. Orden de prioridad: variables de entorno, .env
// (cargado con godotenv sin pisar el entorno), config.env y valores por defecto.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env es opcional

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: leer config.env: %w", err)
		}
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
			Locale:   v.GetString("APP_LOCALE"),
			Storage:  strings.ToLower(v.GetString("APP_STORAGE")),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			ForceIPv4:   v.GetBool("DB_FORCE_IPV4"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Draft: DraftConfig{
			AutosaveQuiet: time.Duration(v.GetInt("DRAFT_AUTOSAVE_QUIET_MS")) * time.Millisecond,
			CommitTimeout: time.Duration(v.GetInt("DRAFT_COMMIT_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones que impedirían arrancar.
func (c *Config) Validate() error {
	if c.App.Storage != "postgres" && c.App.Storage != "memory" {
		return fmt.Errorf("config: APP_STORAGE %q inválido (postgres|memory)", c.App.Storage)
	}
	if c.Draft.AutosaveQuiet <= 0 {
		return fmt.Errorf("config: DRAFT_AUTOSAVE_QUIET_MS debe ser positivo")
	}
	if c.Draft.CommitTimeout <= 0 {
		return fmt.Errorf("config: DRAFT_COMMIT_TIMEOUT_SECONDS debe ser positivo")
	}
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "reposicion-api")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_LOCALE", "es")
	v.SetDefault("APP_STORAGE", "postgres")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "reposicion")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_FORCE_IPV4", false)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "reposicion-api")

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)

	v.SetDefault("DRAFT_AUTOSAVE_QUIET_MS", 400)
	v.SetDefault("DRAFT_COMMIT_TIMEOUT_SECONDS", 15)
}
