package main

import (
	"errors"
	"flag"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/hupe1980/mnistknn/codec"
	"github.com/hupe1980/mnistknn/distance"
	"github.com/hupe1980/mnistknn/mnist"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix of every environment variable read by the CLI.
const envPrefix = "MNISTKNN"

// Config validation errors
var (
	ErrInvalidSource      = errors.New("source must be local, s3, or minio")
	ErrInvalidDataDir     = errors.New("data_dir cannot be empty for the local source")
	ErrInvalidBucket      = errors.New("bucket cannot be empty for remote sources")
	ErrInvalidEndpoint    = errors.New("endpoint cannot be empty for the minio source")
	ErrInvalidFiles       = errors.New("images_file and labels_file cannot be empty")
	ErrInvalidK           = errors.New("k must be positive")
	ErrInvalidMetric      = errors.New("metric must be euclidean or manhattan")
	ErrInvalidMaxSamples  = errors.New("max_samples cannot be negative")
	ErrInvalidConcurrency = errors.New("concurrency cannot be negative")
	ErrInvalidLimit       = errors.New("memory_limit and io_limit cannot be negative")
	ErrInvalidLogFormat   = errors.New("log_format must be 'json' or 'text'")
	ErrInvalidLogLevel    = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidCodec       = errors.New("report_codec must be 'go-json' or 'json'")
)

// Config holds the CLI settings. Fields are read from MNISTKNN_* environment
// variables and may be overridden by flags.
type Config struct {
	Source    string `envconfig:"SOURCE"`
	DataDir   string `envconfig:"DATA_DIR"`
	Bucket    string `envconfig:"BUCKET"`
	Prefix    string `envconfig:"PREFIX"`
	Region    string `envconfig:"REGION"`
	Endpoint  string `envconfig:"ENDPOINT"`
	AccessKey string `envconfig:"ACCESS_KEY"`
	SecretKey string `envconfig:"SECRET_KEY"`
	UseSSL    bool   `envconfig:"USE_SSL"`

	ImagesFile string `envconfig:"IMAGES_FILE"`
	LabelsFile string `envconfig:"LABELS_FILE"`
	MaxSamples int    `envconfig:"MAX_SAMPLES"`
	Seed       int64  `envconfig:"SEED"`

	MemoryLimit int64 `envconfig:"MEMORY_LIMIT"`
	IOLimit     int64 `envconfig:"IO_LIMIT"`

	K                int           `envconfig:"K"`
	Metric           string        `envconfig:"METRIC"`
	Concurrency      int           `envconfig:"CONCURRENCY"`
	QueryParallelism int           `envconfig:"QUERY_PARALLELISM"`
	ScoreValidation  bool          `envconfig:"SCORE_VALIDATION"`
	ProgressInterval time.Duration `envconfig:"PROGRESS_INTERVAL"`

	ReportPath      string `envconfig:"REPORT_PATH"`
	ReportCodec     string `envconfig:"REPORT_CODEC"`
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`

	LogFormat string `envconfig:"LOG_FORMAT"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Source:           "local",
		DataDir:          ".",
		UseSSL:           true,
		ImagesFile:       mnist.DefaultImages,
		LabelsFile:       mnist.DefaultLabels,
		K:                4,
		Metric:           "euclidean",
		ProgressInterval: 5 * time.Second,
		ReportCodec:      "go-json",
		LogFormat:        "text",
		LogLevel:         "info",
	}
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	switch cfg.Source {
	case "local":
		if cfg.DataDir == "" {
			return ErrInvalidDataDir
		}
	case "s3":
		if cfg.Bucket == "" {
			return ErrInvalidBucket
		}
	case "minio":
		if cfg.Bucket == "" {
			return ErrInvalidBucket
		}
		if cfg.Endpoint == "" {
			return ErrInvalidEndpoint
		}
	default:
		return ErrInvalidSource
	}
	if cfg.ImagesFile == "" || cfg.LabelsFile == "" {
		return ErrInvalidFiles
	}
	if cfg.K <= 0 {
		return ErrInvalidK
	}
	if _, err := distance.ParseMetric(cfg.Metric); err != nil {
		return ErrInvalidMetric
	}
	if cfg.MaxSamples < 0 {
		return ErrInvalidMaxSamples
	}
	if cfg.Concurrency < 0 || cfg.QueryParallelism < 0 {
		return ErrInvalidConcurrency
	}
	if cfg.MemoryLimit < 0 || cfg.IOLimit < 0 {
		return ErrInvalidLimit
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return ErrInvalidLogFormat
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return ErrInvalidLogLevel
	}
	if _, err := codec.ByName(cfg.ReportCodec); err != nil {
		return ErrInvalidCodec
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.New("unknown level")
	}
}

// LoadConfig layers defaults, an optional .env file, the environment and
// finally command-line flags, then validates the result.
func LoadConfig(args []string, stderr io.Writer) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	flags := flag.NewFlagSet("mnistknn", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.Source, "source", cfg.Source, "Dataset source: local, s3, or minio")
	flags.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory holding the IDX files (local source)")
	flags.StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "Bucket holding the IDX files (remote sources)")
	flags.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "Key prefix inside the bucket")
	flags.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Custom S3 or MinIO endpoint")
	flags.StringVar(&cfg.ImagesFile, "images", cfg.ImagesFile, "Image file name")
	flags.StringVar(&cfg.LabelsFile, "labels", cfg.LabelsFile, "Label file name")
	flags.IntVar(&cfg.MaxSamples, "max-samples", cfg.MaxSamples, "Keep only the first N samples (0 keeps all)")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Split shuffle seed (0 seeds from the clock)")
	flags.IntVar(&cfg.K, "k", cfg.K, "Number of neighbors")
	flags.StringVar(&cfg.Metric, "metric", cfg.Metric, "Distance metric: euclidean or manhattan")
	flags.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Parallel queries (0 uses GOMAXPROCS)")
	flags.IntVar(&cfg.QueryParallelism, "query-parallelism", cfg.QueryParallelism, "Goroutines per query distance pass (0 or 1 is sequential)")
	flags.Int64Var(&cfg.MemoryLimit, "memory-limit", cfg.MemoryLimit, "Maximum decoded dataset bytes (0 is unlimited)")
	flags.Int64Var(&cfg.IOLimit, "io-limit", cfg.IOLimit, "Maximum read throughput in bytes per second (0 is unlimited)")
	flags.BoolVar(&cfg.ScoreValidation, "validate", cfg.ScoreValidation, "Also score the validation partition")
	flags.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "Write a run report to this path")
	flags.StringVar(&cfg.MetricsTextfile, "metrics-textfile", cfg.MetricsTextfile, "Write Prometheus metrics to this textfile")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json or text")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, or error")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
