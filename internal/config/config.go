package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
	"github.com/riskibarqy/nba-lunar/internal/platform/resilience"
)

// Config stores runtime configuration for the ingestion pipeline. It is built
// once by the CLI and passed to constructors.
type Config struct {
	AppEnv         string `env:"APP_ENV" envDefault:"dev"`
	ServiceName    string `env:"APP_SERVICE_NAME" envDefault:"nba-lunar-ingest"`
	ServiceVersion string `env:"APP_SERVICE_VERSION" envDefault:"dev"`
	LogFormat      string `env:"APP_LOG_FORMAT" envDefault:"json"`
	RawLogLevel    string `env:"APP_LOG_LEVEL" envDefault:"info"`
	LogLevel       logging.Level

	DBURL                   string        `env:"DB_URL"`
	DBDisablePreparedBinary bool          `env:"DB_DISABLE_PREPARED_BINARY_RESULT" envDefault:"false"`
	DBMaxOpenConns          int           `env:"DB_MAX_OPEN_CONNS" envDefault:"4"`
	DBQueryTimeout          time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"2m"`
	InsertBatchSize         int           `env:"DB_INSERT_BATCH_SIZE" envDefault:"500"`

	CacheDir             string        `env:"CACHE_DIR" envDefault:"data/json"`
	LocationCacheEnabled bool          `env:"LOCATION_CACHE_ENABLED" envDefault:"true"`
	LocationCacheTTL     time.Duration `env:"LOCATION_CACHE_TTL" envDefault:"0s"`

	NBABaseURL string                          `env:"NBA_BASE_URL" envDefault:"https://stats.nba.com/stats"`
	NBATimeout time.Duration                   `env:"NBA_TIMEOUT" envDefault:"30s"`
	NBACircuit resilience.CircuitBreakerConfig `envPrefix:"NBA_CIRCUIT_"`

	AstronomyBaseURL   string                          `env:"ASTRONOMY_BASE_URL" envDefault:"https://api.astronomyapi.com"`
	AstronomyAppID     string                          `env:"ASTRONOMY_APP_ID"`
	AstronomyAppSecret string                          `env:"ASTRONOMY_APP_SECRET"`
	AstronomyTimeout   time.Duration                   `env:"ASTRONOMY_TIMEOUT" envDefault:"10s"`
	AstronomyCircuit   resilience.CircuitBreakerConfig `envPrefix:"ASTRONOMY_CIRCUIT_"`

	ArenaLocationsCSV string   `env:"ARENA_LOCATIONS_CSV" envDefault:"data/nba_arena_location_data.csv"`
	ExportDir         string   `env:"EXPORT_DIR" envDefault:"data"`
	Seasons           []string `env:"INGEST_SEASONS" envSeparator:"," envDefault:"2018-19,2019-20,2020-21,2021-22,2022-23"`

	UptraceEnabled bool   `env:"UPTRACE_ENABLED" envDefault:"false"`
	UptraceDSN     string `env:"UPTRACE_DSN"`
	OTLPHeaders    string `env:"OTEL_EXPORTER_OTLP_HEADERS"`

	PyroscopeEnabled           bool          `env:"PYROSCOPE_ENABLED" envDefault:"false"`
	PyroscopeServerAddress     string        `env:"PYROSCOPE_SERVER_ADDRESS"`
	PyroscopeAppName           string        `env:"PYROSCOPE_APP_NAME"`
	PyroscopeAuthToken         string        `env:"PYROSCOPE_AUTH_TOKEN"`
	PyroscopeBasicAuthUser     string        `env:"PYROSCOPE_BASIC_AUTH_USER"`
	PyroscopeBasicAuthPassword string        `env:"PYROSCOPE_BASIC_AUTH_PASSWORD"`
	PyroscopeUploadRate        time.Duration `env:"PYROSCOPE_UPLOAD_RATE" envDefault:"15s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	appEnv, err := parseAppEnv(cfg.AppEnv)
	if err != nil {
		return Config{}, err
	}
	cfg.AppEnv = appEnv
	cfg.LogLevel = logging.ParseLevel(cfg.RawLogLevel)

	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case logging.FormatJSON, logging.FormatConsole:
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	default:
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", cfg.LogFormat, logging.FormatJSON, logging.FormatConsole)
	}

	cfg.CacheDir = strings.TrimSpace(cfg.CacheDir)
	if cfg.CacheDir == "" {
		return Config{}, fmt.Errorf("CACHE_DIR must not be empty")
	}
	if cfg.DBMaxOpenConns < 1 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1")
	}
	if cfg.DBQueryTimeout <= 0 {
		return Config{}, fmt.Errorf("DB_QUERY_TIMEOUT must be > 0")
	}
	if cfg.InsertBatchSize < 1 {
		return Config{}, fmt.Errorf("DB_INSERT_BATCH_SIZE must be >= 1")
	}
	if cfg.LocationCacheTTL < 0 {
		return Config{}, fmt.Errorf("LOCATION_CACHE_TTL must be >= 0")
	}

	cfg.NBABaseURL = strings.TrimRight(strings.TrimSpace(cfg.NBABaseURL), "/")
	if cfg.NBABaseURL == "" {
		return Config{}, fmt.Errorf("NBA_BASE_URL must not be empty")
	}
	if cfg.NBATimeout <= 0 {
		return Config{}, fmt.Errorf("NBA_TIMEOUT must be > 0")
	}
	cfg.AstronomyBaseURL = strings.TrimRight(strings.TrimSpace(cfg.AstronomyBaseURL), "/")
	if cfg.AstronomyBaseURL == "" {
		return Config{}, fmt.Errorf("ASTRONOMY_BASE_URL must not be empty")
	}
	if cfg.AstronomyTimeout <= 0 {
		return Config{}, fmt.Errorf("ASTRONOMY_TIMEOUT must be > 0")
	}
	if err := validateCircuit("NBA_CIRCUIT", cfg.NBACircuit); err != nil {
		return Config{}, err
	}
	if err := validateCircuit("ASTRONOMY_CIRCUIT", cfg.AstronomyCircuit); err != nil {
		return Config{}, err
	}

	seasons, err := parseSeasons(cfg.Seasons)
	if err != nil {
		return Config{}, err
	}
	cfg.Seasons = seasons

	cfg.UptraceDSN = strings.TrimSpace(cfg.UptraceDSN)
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(cfg.OTLPHeaders)
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg.PyroscopeServerAddress = strings.TrimSpace(cfg.PyroscopeServerAddress)
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	if strings.TrimSpace(cfg.PyroscopeAppName) == "" {
		cfg.PyroscopeAppName = cfg.ServiceName
	}

	return cfg, nil
}

// RequireDatabase reports a configuration error when DB_URL is missing.
func (c Config) RequireDatabase() error {
	if strings.TrimSpace(c.DBURL) == "" {
		return fmt.Errorf("DB_URL is required")
	}
	return nil
}

// RequireAstronomyCredentials is checked only by commands that call the
// astronomy API.
func (c Config) RequireAstronomyCredentials() error {
	if strings.TrimSpace(c.AstronomyAppID) == "" || strings.TrimSpace(c.AstronomyAppSecret) == "" {
		return fmt.Errorf("ASTRONOMY_APP_ID and ASTRONOMY_APP_SECRET are required")
	}
	return nil
}

func validateCircuit(prefix string, cfg resilience.CircuitBreakerConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.FailureThreshold < 1 {
		return fmt.Errorf("%s_FAILURE_THRESHOLD must be >= 1", prefix)
	}
	if cfg.OpenTimeout <= 0 {
		return fmt.Errorf("%s_OPEN_TIMEOUT must be > 0", prefix)
	}
	if cfg.HalfOpenMaxReq < 1 {
		return fmt.Errorf("%s_HALF_OPEN_MAX_REQUESTS must be >= 1", prefix)
	}
	return nil
}

// WithSeasons returns a copy of c whose season list is replaced by raw, validated
// like INGEST_SEASONS.
func (c Config) WithSeasons(raw []string) (Config, error) {
	seasons, err := parseSeasons(raw)
	if err != nil {
		return Config{}, err
	}
	c.Seasons = seasons
	return c, nil
}

// parseSeasons accepts NBA season labels such as "2021-22".
func parseSeasons(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		season := strings.TrimSpace(item)
		if season == "" {
			continue
		}
		if err := validateSeason(season); err != nil {
			return nil, fmt.Errorf("parse INGEST_SEASONS: %w", err)
		}
		if _, ok := seen[season]; ok {
			continue
		}
		seen[season] = struct{}{}
		out = append(out, season)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("INGEST_SEASONS must list at least one season")
	}
	return out, nil
}

func validateSeason(season string) error {
	start, end, ok := strings.Cut(season, "-")
	if !ok || len(start) != 4 || len(end) != 2 {
		return fmt.Errorf("invalid season %q, expected YYYY-YY", season)
	}
	startYear, err := strconv.Atoi(start)
	if err != nil {
		return fmt.Errorf("invalid season %q: %w", season, err)
	}
	endYear, err := strconv.Atoi(end)
	if err != nil {
		return fmt.Errorf("invalid season %q: %w", season, err)
	}
	if (startYear+1)%100 != endYear {
		return fmt.Errorf("invalid season %q, years must be consecutive", season)
	}
	return nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
