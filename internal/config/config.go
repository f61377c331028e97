package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/dirgest/internal/extract"
)

type Config struct {
	Port     string
	LogLevel string

	// Pathstore connection. Publishing is disabled when PathstoreURL is empty.
	PathstoreURL    string
	PathstoreAPIKey string

	// Auth
	DirgestAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Extraction
	RulesFile               string
	DefaultDesignation      string
	DefaultDepartment       string
	DefaultDistrict         string
	EmailDomain             string
	SerialMin               int
	SerialMax               int
	NameWindow              int
	DesignationWindow       int
	DepartmentWindow        int
	EmailWindowFrom         int
	EmailWindowTo           int
	MaxDepartmentLength     int
	MaxDepartmentLineLength int
	StopDepartmentAtPhone   bool
}

func Load() Config {
	def := extract.DefaultOptions()
	cfg := Config{
		Port:     envOr("PORT", "8090"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		PathstoreURL:    os.Getenv("PATHSTORE_URL"),
		PathstoreAPIKey: os.Getenv("PATHSTORE_API_KEY"),

		DirgestAPIKey: os.Getenv("DIRGEST_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		RulesFile:               os.Getenv("RULES_FILE"),
		DefaultDesignation:      envOr("DEFAULT_DESIGNATION", def.Defaults.Designation),
		DefaultDepartment:       envOr("DEFAULT_DEPARTMENT", def.Defaults.Department),
		DefaultDistrict:         envOr("DEFAULT_DISTRICT", def.Defaults.District),
		EmailDomain:             envOr("EMAIL_DOMAIN", def.Defaults.EmailDomain),
		SerialMin:               envInt("SERIAL_MIN", def.SerialMin),
		SerialMax:               envInt("SERIAL_MAX", def.SerialMax),
		NameWindow:              envInt("NAME_WINDOW", def.Windows.Name),
		DesignationWindow:       envInt("DESIGNATION_WINDOW", def.Windows.Designation),
		DepartmentWindow:        envInt("DEPARTMENT_WINDOW", def.Windows.Department),
		EmailWindowFrom:         envInt("EMAIL_WINDOW_FROM", def.Windows.Email.From),
		EmailWindowTo:           envInt("EMAIL_WINDOW_TO", def.Windows.Email.To),
		MaxDepartmentLength:     envInt("MAX_DEPARTMENT_LENGTH", def.MaxDepartmentLength),
		MaxDepartmentLineLength: envInt("MAX_DEPARTMENT_LINE_LENGTH", def.MaxDepartmentLineLength),
		StopDepartmentAtPhone:   envBool("STOP_DEPARTMENT_AT_PHONE", def.StopDepartmentAtPhone),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks settings shared by every command.
func (c Config) Validate() error {
	if c.SerialMin < 0 || c.SerialMax < c.SerialMin {
		return fmt.Errorf("SERIAL_MIN/SERIAL_MAX: invalid range %d..%d", c.SerialMin, c.SerialMax)
	}
	if c.EmailWindowTo < c.EmailWindowFrom {
		return fmt.Errorf("EMAIL_WINDOW_FROM/EMAIL_WINDOW_TO: invalid window %d..%d", c.EmailWindowFrom, c.EmailWindowTo)
	}
	for key, v := range map[string]int{
		"NAME_WINDOW":                c.NameWindow,
		"DESIGNATION_WINDOW":         c.DesignationWindow,
		"DEPARTMENT_WINDOW":          c.DepartmentWindow,
		"MAX_DEPARTMENT_LENGTH":      c.MaxDepartmentLength,
		"MAX_DEPARTMENT_LINE_LENGTH": c.MaxDepartmentLineLength,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", key, v)
		}
	}
	return nil
}

// ValidateServer adds the requirements of the HTTP service.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DirgestAPIKey == "" {
		return fmt.Errorf("DIRGEST_API_KEY is required")
	}
	if c.PathstoreURL != "" && c.PathstoreAPIKey == "" {
		return fmt.Errorf("PATHSTORE_API_KEY is required when PATHSTORE_URL is set")
	}
	return nil
}

// ExtractOptions maps the extraction settings onto extract.Options.
func (c Config) ExtractOptions() extract.Options {
	opts := extract.DefaultOptions()
	opts.SerialMin = c.SerialMin
	opts.SerialMax = c.SerialMax
	opts.MaxDepartmentLength = c.MaxDepartmentLength
	opts.MaxDepartmentLineLength = c.MaxDepartmentLineLength
	opts.StopDepartmentAtPhone = c.StopDepartmentAtPhone
	opts.Windows = extract.Windows{
		Name:        c.NameWindow,
		Designation: c.DesignationWindow,
		Department:  c.DepartmentWindow,
		Email:       extract.Window{From: c.EmailWindowFrom, To: c.EmailWindowTo},
	}
	opts.Defaults = extract.Defaults{
		Designation: c.DefaultDesignation,
		Department:  c.DefaultDepartment,
		District:    c.DefaultDistrict,
		EmailDomain: c.EmailDomain,
	}
	return opts
}

// Dictionary loads RulesFile, or returns the built-in tables when unset.
func (c Config) Dictionary() (*extract.Dictionary, error) {
	if c.RulesFile == "" {
		return extract.DefaultDictionary(), nil
	}
	return extract.LoadDictionaryFile(c.RulesFile)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
