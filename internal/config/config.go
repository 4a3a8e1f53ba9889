package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment mirrors of the ambient flags.
const EnvPrefix = "PIXELSEC"

// Ambient settings. Action selection, the target serial and the
// authorization key are never read from here.
type Config struct {
	ADBPath     string
	LogLevel    zerolog.Level
	Timeout     time.Duration
	PayloadPath string
	MetricsFile string
	JSON        bool
	NoColor     bool
	PromptKey   bool
}

const (
	KeyADB         = "adb"
	KeyLogLevel    = "log-level"
	KeyTimeout     = "timeout"
	KeyPayload     = "payload"
	KeyMetricsFile = "metrics-file"
	KeyJSON        = "json"
	KeyNoColor     = "no-color"
	KeyPromptKey   = "prompt-key"
)

func Default() Config {
	return Config{
		ADBPath:  "adb",
		LogLevel: zerolog.WarnLevel,
	}
}

// RegisterFlags adds the ambient flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyADB, d.ADBPath, "path to the adb binary")
	fs.String(KeyLogLevel, d.LogLevel.String(), "log level (trace, debug, info, warn, error)")
	fs.Duration(KeyTimeout, 0, "per-command timeout for adb calls (0 waits forever)")
	fs.String(KeyPayload, "", "sealed payload bundle (default: built-in)")
	fs.String(KeyMetricsFile, "", "write run metrics to this textfile, or - for stdout")
	fs.Bool(KeyJSON, false, "print results as JSON")
	fs.Bool(KeyNoColor, false, "disable colored output")
	fs.Bool(KeyPromptKey, false, "prompt for the authorization key when -k is not given")
}

// NewViper binds fs and the PIXELSEC_* environment. When file is non-empty
// it is read as YAML; no file is searched for otherwise.
func NewViper(fs *pflag.FlagSet, file string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, k := range []string{KeyADB, KeyLogLevel, KeyTimeout, KeyPayload, KeyMetricsFile, KeyJSON, KeyNoColor, KeyPromptKey} {
		if f := fs.Lookup(k); f != nil {
			if err := v.BindPFlag(k, f); err != nil {
				return nil, err
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config %s: %w", file, err)
		}
	}
	return v, nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if s := strings.TrimSpace(v.GetString(KeyADB)); s != "" {
		cfg.ADBPath = s
	}
	if s := v.GetString(KeyLogLevel); s != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", KeyLogLevel, s, err)
		}
		cfg.LogLevel = l
	}
	cfg.Timeout = v.GetDuration(KeyTimeout)
	if cfg.Timeout < 0 {
		return cfg, fmt.Errorf("invalid %s %s", KeyTimeout, cfg.Timeout)
	}
	cfg.PayloadPath = v.GetString(KeyPayload)
	cfg.MetricsFile = v.GetString(KeyMetricsFile)
	cfg.JSON = v.GetBool(KeyJSON)
	cfg.NoColor = v.GetBool(KeyNoColor)
	cfg.PromptKey = v.GetBool(KeyPromptKey)
	return cfg, nil
}
