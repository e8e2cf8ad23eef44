package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/eventlens/internal/core/projection"
	"github.com/agenthands/eventlens/internal/core/viewport"
)

type ServerConfig struct {
	Port          string `toml:"port" yaml:"port" env:"PORT"`
	Mode          string `toml:"mode" yaml:"mode" env:"GIN_MODE"`
	LogFile       string `toml:"log_file" yaml:"log_file" env:"LOG_FILE"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb" yaml:"log_max_size_mb" env:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `toml:"log_max_backups" yaml:"log_max_backups" env:"LOG_MAX_BACKUPS"`
	CORSOrigins   string `toml:"cors_origins" yaml:"cors_origins" env:"CORS_ORIGINS"`
}

type StoreConfig struct {
	Driver   string `toml:"driver" yaml:"driver" env:"STORE_DRIVER"`
	JSONPath string `toml:"json_path" yaml:"json_path" env:"EVENTS_JSON_PATH"`
	Watch    bool   `toml:"watch" yaml:"watch" env:"STORE_WATCH"`
}

type LLMConfig struct {
	Provider       string `toml:"provider" yaml:"provider" env:"LLM_PROVIDER"`
	Model          string `toml:"model" yaml:"model" env:"LLM_MODEL"`
	EmbeddingModel string `toml:"embedding_model" yaml:"embedding_model" env:"LLM_EMBEDDING_MODEL"`
	APIKey         string `toml:"api_key" yaml:"api_key" env:"LLM_API_KEY"`
	BaseURL        string `toml:"base_url" yaml:"base_url" env:"LLM_BASE_URL"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" yaml:"uri" env:"MEMGRAPH_URI"`
	User     string `toml:"user" yaml:"user" env:"MEMGRAPH_USER"`
	Password string `toml:"password" yaml:"password" env:"MEMGRAPH_PASSWORD"`
	Database string `toml:"database" yaml:"database" env:"MEMGRAPH_DATABASE"`
}

// ExtractionPrompts are fmt templates. Informative and Humanitarian take the
// tweet; Event takes the tweet and the existing summary.
type ExtractionPrompts struct {
	Informative  string `toml:"informative" yaml:"informative"`
	Humanitarian string `toml:"humanitarian" yaml:"humanitarian"`
	Event        string `toml:"event" yaml:"event"`
}

type DedupeConfig struct {
	SimilarityThreshold float64 `toml:"similarity_threshold" yaml:"similarity_threshold" env:"SIMILARITY_THRESHOLD"`
}

type SummaryPrompts struct {
	Merge string `toml:"merge" yaml:"merge"`
}

type AdminConfig struct {
	Username        string `toml:"username" yaml:"username" env:"ADMIN_USERNAME"`
	Password        string `toml:"password" yaml:"password" env:"ADMIN_PASSWORD"`
	PasswordHash    string `toml:"password_hash" yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	JWTSecret       string `toml:"jwt_secret" yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes" yaml:"token_ttl_minutes" env:"ADMIN_TOKEN_TTL_MINUTES"`
}

type LayoutConfig struct {
	PerRow          int     `toml:"per_row" yaml:"per_row"`
	ColSpacing      float64 `toml:"col_spacing" yaml:"col_spacing"`
	RowSpacing      float64 `toml:"row_spacing" yaml:"row_spacing"`
	LocationOffsetY float64 `toml:"location_offset_y" yaml:"location_offset_y"`
	LocationSpacing float64 `toml:"location_spacing" yaml:"location_spacing"`
	FieldColSpacing float64 `toml:"field_col_spacing" yaml:"field_col_spacing"`
	FieldRowSpacing float64 `toml:"field_row_spacing" yaml:"field_row_spacing"`
	FieldIdentity   string  `toml:"field_identity" yaml:"field_identity" env:"GRAPH_FIELD_IDENTITY"`
}

type ViewportConfig struct {
	Padding          float64 `toml:"padding" yaml:"padding"`
	FitDurationMS    int     `toml:"fit_duration_ms" yaml:"fit_duration_ms"`
	SettleDelayMS    int     `toml:"settle_delay_ms" yaml:"settle_delay_ms"`
	ZoomFactor       float64 `toml:"zoom_factor" yaml:"zoom_factor"`
	ZoomDurationMS   int     `toml:"zoom_duration_ms" yaml:"zoom_duration_ms"`
	HorizontalBias   float64 `toml:"horizontal_bias" yaml:"horizontal_bias"`
	LabelBudget      int     `toml:"label_budget" yaml:"label_budget"`
	Width            float64 `toml:"width" yaml:"width"`
	Height           float64 `toml:"height" yaml:"height"`
	ClusterAlgorithm string  `toml:"cluster_algorithm" yaml:"cluster_algorithm"`
}

type DashboardConfig struct {
	APIBaseURL        string `toml:"api_base_url" yaml:"api_base_url" env:"API_BASE_URL"`
	RefreshIntervalMS int    `toml:"refresh_interval_ms" yaml:"refresh_interval_ms" env:"REFRESH_INTERVAL_MS"`
	MaxEventsDisplay  int    `toml:"max_events_display" yaml:"max_events_display"`
	RequestTimeoutMS  int    `toml:"request_timeout_ms" yaml:"request_timeout_ms"`
}

type Config struct {
	Server     ServerConfig      `toml:"server" yaml:"server"`
	Store      StoreConfig       `toml:"store" yaml:"store"`
	LLM        LLMConfig         `toml:"llm" yaml:"llm"`
	Memgraph   MemgraphConfig    `toml:"memgraph" yaml:"memgraph"`
	Extraction ExtractionPrompts `toml:"extraction" yaml:"extraction"`
	Dedupe     DedupeConfig      `toml:"dedupe" yaml:"dedupe"`
	Summary    SummaryPrompts    `toml:"summary" yaml:"summary"`
	Admin      AdminConfig       `toml:"admin" yaml:"admin"`
	Layout     LayoutConfig      `toml:"layout" yaml:"layout"`
	Viewport   ViewportConfig    `toml:"viewport" yaml:"viewport"`
	Dashboard  DashboardConfig   `toml:"dashboard" yaml:"dashboard"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	layout := projection.DefaultLayout()
	vp := viewport.DefaultOptions()
	return &Config{
		Server: ServerConfig{
			Port:          "5002",
			LogMaxSizeMB:  50,
			LogMaxBackups: 3,
			CORSOrigins:   "http://localhost:3000",
		},
		Store: StoreConfig{
			Driver:   "json",
			JSONPath: "events.json",
			Watch:    true,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "gpt-oss:latest",
			BaseURL:  "http://localhost:11434",
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Extraction: ExtractionPrompts{
			Informative:  DefaultInformativePrompt,
			Humanitarian: DefaultHumanitarianPrompt,
			Event:        DefaultEventPrompt,
		},
		Dedupe: DedupeConfig{SimilarityThreshold: 0.6},
		Summary: SummaryPrompts{
			Merge: DefaultMergePrompt,
		},
		Admin: AdminConfig{
			Username:        "admin",
			TokenTTLMinutes: 60,
		},
		Layout: LayoutConfig{
			PerRow:          layout.PerRow,
			ColSpacing:      layout.ColSpacing,
			RowSpacing:      layout.RowSpacing,
			LocationOffsetY: layout.LocationOffsetY,
			LocationSpacing: layout.LocationSpacing,
			FieldColSpacing: layout.FieldColSpacing,
			FieldRowSpacing: layout.FieldRowSpacing,
			FieldIdentity:   layout.FieldIdentity,
		},
		Viewport: ViewportConfig{
			Padding:          vp.Padding,
			FitDurationMS:    int(vp.FitDuration / time.Millisecond),
			SettleDelayMS:    int(vp.SettleDelay / time.Millisecond),
			ZoomFactor:       vp.ZoomFactor,
			ZoomDurationMS:   int(vp.ZoomDuration / time.Millisecond),
			HorizontalBias:   vp.HorizontalBias,
			LabelBudget:      vp.LabelBudget,
			Width:            vp.Width,
			Height:           vp.Height,
			ClusterAlgorithm: "lpa",
		},
		Dashboard: DashboardConfig{
			APIBaseURL:        "http://localhost:5002",
			RefreshIntervalMS: 30000,
			MaxEventsDisplay:  50,
			RequestTimeoutMS:  120000,
		},
	}
}

// Load reads a TOML or YAML file over the defaults. The format follows the
// file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	return cfg, nil
}

// LoadWithEnv loads path when it exists, falls back to Default otherwise and
// applies environment overrides on top.
func LoadWithEnv(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := Load(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) ProjectionLayout() projection.Layout {
	l := projection.DefaultLayout()
	l.PerRow = c.Layout.PerRow
	l.ColSpacing = c.Layout.ColSpacing
	l.RowSpacing = c.Layout.RowSpacing
	l.LocationOffsetY = c.Layout.LocationOffsetY
	l.LocationSpacing = c.Layout.LocationSpacing
	l.FieldColSpacing = c.Layout.FieldColSpacing
	l.FieldRowSpacing = c.Layout.FieldRowSpacing
	if c.Layout.FieldIdentity != "" {
		l.FieldIdentity = c.Layout.FieldIdentity
	}
	return l
}

func (c *Config) ViewportOptions() viewport.Options {
	o := viewport.DefaultOptions()
	o.Padding = c.Viewport.Padding
	o.FitDuration = time.Duration(c.Viewport.FitDurationMS) * time.Millisecond
	o.SettleDelay = time.Duration(c.Viewport.SettleDelayMS) * time.Millisecond
	if c.Viewport.ZoomFactor > 0 {
		o.ZoomFactor = c.Viewport.ZoomFactor
	}
	o.ZoomDuration = time.Duration(c.Viewport.ZoomDurationMS) * time.Millisecond
	o.HorizontalBias = c.Viewport.HorizontalBias
	o.LabelBudget = c.Viewport.LabelBudget
	if c.Viewport.Width > 0 {
		o.Width = c.Viewport.Width
	}
	if c.Viewport.Height > 0 {
		o.Height = c.Viewport.Height
	}
	return o
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Dashboard.RefreshIntervalMS) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Dashboard.RequestTimeoutMS) * time.Millisecond
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Admin.TokenTTLMinutes) * time.Minute
}
