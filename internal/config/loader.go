package config

import (
	"fmt"

	"github.com/rpattn/shadowschema/internal/db"
	"github.com/rpattn/shadowschema/internal/registry"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration: database connection settings,
// the registry-wide versioning options and the shadowgen tool surface.
type Config struct {
	DB            db.Config
	Options       registry.Options
	ModelPath     string
	HTTPAddr      string
	ReportPath    string
	InstallSchema bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DB:        db.DefaultConfig(),
		Options:   registry.DefaultOptions(),
		ModelPath: "model.yaml",
		HTTPAddr:  ":8080",
	}
}

// Load reads config.yaml from the given path with environment overrides
// (SHADOW_ prefix, e.g. SHADOW_DATABASE_HOST).
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("SHADOW")

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("versioning.enabled")
	v.BindEnv("versioning.create_tables")
	v.BindEnv("versioning.create_models")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Use defaults + env.
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("database.host") {
		cfg.DB.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.DB.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.DB.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.DB.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.DB.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.DB.SSLMode = v.GetString("database.sslmode")
	}

	if v.IsSet("versioning.enabled") {
		cfg.Options.Versioning = v.GetBool("versioning.enabled")
	}
	if v.IsSet("versioning.create_tables") {
		cfg.Options.CreateTables = v.GetBool("versioning.create_tables")
	}
	if v.IsSet("versioning.create_models") {
		cfg.Options.CreateModels = v.GetBool("versioning.create_models")
	}

	if v.IsSet("model.path") {
		cfg.ModelPath = v.GetString("model.path")
	}
	if v.IsSet("http.addr") {
		cfg.HTTPAddr = v.GetString("http.addr")
	}
	if v.IsSet("report.path") {
		cfg.ReportPath = v.GetString("report.path")
	}
	if v.IsSet("schema.install") {
		cfg.InstallSchema = v.GetBool("schema.install")
	}

	return cfg, nil
}
