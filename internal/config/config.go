package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Roadmap   RoadmapConfig   `mapstructure:"roadmap"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

type RoadmapConfig struct {
	// CatalogFile overrides the embedded roadmap catalog.
	CatalogFile string `mapstructure:"catalog_file" validate:"omitempty,file"`
	// Timezone decides which calendar day "today" is.
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=sqlite mysql postgres"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts" validate:"min=1"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
	ExportDirectory string `mapstructure:"export_directory"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studytrack")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	// Catalog and report template are optional - embedded fallbacks are used when empty
	v.SetDefault("roadmap.catalog_file", "")
	v.SetDefault("roadmap.timezone", "UTC")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "studytrack.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.database", "studytrack")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("outputs.export_directory", "exports")
	v.SetDefault("templates.report_template", "")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("roadmap.timezone", "STUDYTRACK_TIMEZONE"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYTRACK_TIMEZONE environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
