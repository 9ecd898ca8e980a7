package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the process-level options of the berrymatch binary.
// Precedence: command-line flag > BERRYMATCH_* environment > ~/.berrymatch/settings.yaml > defaults.
type Settings struct {
	FPS      int         `mapstructure:"fps"`
	Seed     int64       `mapstructure:"seed"`
	DBPath   string      `mapstructure:"db"`
	LogLevel string      `mapstructure:"log_level"`
	LogFile  string      `mapstructure:"log_file"`
	Rules    string      `mapstructure:"rules"`
	SSH      SSHSettings `mapstructure:"ssh"`
}

// SSHSettings configure the SSH server.
type SSHSettings struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	HostKey     string        `mapstructure:"host_key"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// Address returns host:port.
func (s SSHSettings) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// flagKeys maps flag names to settings keys.
var flagKeys = map[string]string{
	"fps":          "fps",
	"seed":         "seed",
	"db":           "db",
	"log-level":    "log_level",
	"log-file":     "log_file",
	"rules":        "rules",
	"host":         "ssh.host",
	"port":         "ssh.port",
	"host-key":     "ssh.host_key",
	"idle-timeout": "ssh.idle_timeout",
}

// NewViper returns a viper instance with the defaults, the environment binding and the
// settings file location configured.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("fps", 60)
	v.SetDefault("seed", 0)
	v.SetDefault("db", "~/"+AppDir+"/scores.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "~/"+AppDir+"/berrymatch.log")
	v.SetDefault("rules", "")
	v.SetDefault("ssh.host", "0.0.0.0")
	v.SetDefault("ssh.port", 2222)
	v.SetDefault("ssh.host_key", "~/"+AppDir+"/ssh_host_key")
	v.SetDefault("ssh.idle_timeout", 30*time.Minute)

	v.SetEnvPrefix("BERRYMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("settings")
	v.SetConfigType("yaml")
	v.AddConfigPath(HomePath(""))
	return v
}

// LoadSettings binds the flags that exist in flags, reads the settings file if there is
// one and decodes the result.
func LoadSettings(v *viper.Viper, flags *pflag.FlagSet) (Settings, error) {
	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Settings{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read settings %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if s.FPS <= 0 {
		return Settings{}, fmt.Errorf("fps %d must be positive: %w", s.FPS, ErrInvalidConfig)
	}
	return s, nil
}
