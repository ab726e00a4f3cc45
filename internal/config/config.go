package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort     = 8080
	DefaultHost     = "127.0.0.1"
	DefaultLogLevel = "info"
	DefaultDraftTTL = 7 * 24 * time.Hour

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the payment-request PDF server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Output configuration
	OutputDirectory string
	FontDirectory   string
	FontFamily      string
	LogoPath        string
	ShareCommand    string

	// Issuing-company identity printed on every document
	CompanyName       string
	DocumentCode      string
	DocumentRevision  string
	DocumentEffective string

	// Draft persistence
	DraftTTL time.Duration

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	LogFormat  string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio, // Default to stdio mode for MCP compatibility
		Host:            DefaultHost,
		Port:            DefaultPort,
		OutputDirectory: currentDir,
		DraftTTL:        DefaultDraftTTL,
		Version:         "1.0.0",
		ServerName:      "payreq-pdf",
		LogLevel:        DefaultLogLevel,
		LogFormat:       "console",
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	for _, p := range []*string{&cfg.OutputDirectory, &cfg.FontDirectory, &cfg.LogoPath} {
		if *p == "" {
			continue
		}
		if expandedPath, err := filepath.Abs(*p); err == nil {
			*p = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PAYREQ")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("outdir", cfg.OutputDirectory)
	viper.SetDefault("fontdir", cfg.FontDirectory)
	viper.SetDefault("fontfamily", cfg.FontFamily)
	viper.SetDefault("logo", cfg.LogoPath)
	viper.SetDefault("sharecmd", cfg.ShareCommand)
	viper.SetDefault("company", cfg.CompanyName)
	viper.SetDefault("doccode", cfg.DocumentCode)
	viper.SetDefault("docrev", cfg.DocumentRevision)
	viper.SetDefault("doceffective", cfg.DocumentEffective)
	viper.SetDefault("draftttl", cfg.DraftTTL)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("logformat", cfg.LogFormat)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("outdir", cfg.OutputDirectory, "Directory generated PDF files are written to")
	pflag.String("fontdir", cfg.FontDirectory, "Directory holding UTF-8 TTF fonts (empty for built-in fonts)")
	pflag.String("fontfamily", cfg.FontFamily, "Font family name to load from the font directory")
	pflag.String("logo", cfg.LogoPath, "Path to the company logo image")
	pflag.String("sharecmd", cfg.ShareCommand, "Command used to share generated files")
	pflag.String("company", cfg.CompanyName, "Company name printed in the document header")
	pflag.String("doccode", cfg.DocumentCode, "Document control code (Mã hiệu)")
	pflag.String("docrev", cfg.DocumentRevision, "Document revision (Lần ban hành)")
	pflag.String("doceffective", cfg.DocumentEffective, "Document effective date (Ngày hiệu lực)")
	pflag.Duration("draftttl", cfg.DraftTTL, "How long saved drafts are kept")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("logformat", cfg.LogFormat, "Log format (console, json)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "host", "port", "outdir", "fontdir", "fontfamily", "logo",
		"sharecmd", "company", "doccode", "docrev", "doceffective",
		"draftttl", "loglevel", "logformat",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npayreq-pdf - A Model Context Protocol server generating Vietnamese payment-request PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, current directory output (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --outdir=/path/to/out --logo=logo.png    "+
			"# stdio mode with output directory and logo\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081 # SSE server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_MODE          Server mode\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_HOST          Server host\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_PORT          Server port\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_OUTDIR        Output directory\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_FONTDIR       UTF-8 font directory\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_FONTFAMILY    Font family name\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_LOGO          Company logo path\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_SHARECMD      Share command\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_COMPANY       Company name\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_DOCCODE       Document control code\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_DOCREV        Document revision\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_DOCEFFECTIVE  Document effective date\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_DRAFTTTL      Draft retention duration\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_LOGLEVEL      Log level\n")
		fmt.Fprintf(os.Stderr, "  PAYREQ_LOGFORMAT     Log format\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.OutputDirectory = viper.GetString("outdir")
	cfg.FontDirectory = viper.GetString("fontdir")
	cfg.FontFamily = viper.GetString("fontfamily")
	cfg.LogoPath = viper.GetString("logo")
	cfg.ShareCommand = viper.GetString("sharecmd")
	cfg.CompanyName = viper.GetString("company")
	cfg.DocumentCode = viper.GetString("doccode")
	cfg.DocumentRevision = viper.GetString("docrev")
	cfg.DocumentEffective = viper.GetString("doceffective")
	cfg.DraftTTL = viper.GetDuration("draftttl")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.LogFormat = viper.GetString("logformat")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.OutputDirectory == "" {
		return errors.New("output directory cannot be empty")
	}

	// Create the output directory when it does not exist yet
	if _, err := os.Stat(c.OutputDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.OutputDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDirectory, err)
	}

	// The font directory is optional but must exist when set
	if c.FontDirectory != "" {
		if _, err := os.Stat(c.FontDirectory); err != nil {
			return fmt.Errorf("cannot access font directory %s: %w", c.FontDirectory, err)
		}
	}

	if c.DraftTTL <= 0 {
		return errors.New("draft TTL must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, OutputDirectory: %s, FontDirectory: %s, LogLevel: %s}",
		c.Mode, c.Host, c.Port, c.OutputDirectory, c.FontDirectory, c.LogLevel)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
