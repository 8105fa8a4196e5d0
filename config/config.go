package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	viper.Viper
}

const (
	ConfigDebug             = "debug"
	ConfigBeamWidth         = "beam-width"
	ConfigFutureDiscount    = "future-discount"
	ConfigWeightsFile       = "weights-file"
	ConfigNatsURL           = "nats-url"
	ConfigNatsChannel       = "nats-channel"
	ConfigAutoplayGames     = "autoplay-games"
	ConfigAutoplayThreads   = "autoplay-threads"
	ConfigAutoplayWidth     = "autoplay-width"
	ConfigAutoplayHeight    = "autoplay-height"
	ConfigAutoplayMaxPieces = "autoplay-max-pieces"
	ConfigAutoplayLogfile   = "autoplay-logfile"
	ConfigCPUProfile        = "cpu-profile"
)

// Load reads settings from the environment (TETRABOT_BEAM_WIDTH and so on)
// and from --key=value style arguments, which take precedence.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.SetEnvPrefix("tetrabot")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigBeamWidth, 5)
	c.SetDefault(ConfigFutureDiscount, 0.75)
	c.SetDefault(ConfigWeightsFile, "")
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigNatsChannel, "tetrabot.move")
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayThreads, 0)
	c.SetDefault(ConfigAutoplayWidth, 10)
	c.SetDefault(ConfigAutoplayHeight, 20)
	c.SetDefault(ConfigAutoplayMaxPieces, 1000)
	c.SetDefault(ConfigAutoplayLogfile, "/tmp/tetrabot_autoplay.txt")
	c.SetDefault(ConfigCPUProfile, "")

	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		k, v, found := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !found {
			// bare flags are booleans
			v = "true"
		}
		c.Set(k, v)
	}
	return nil
}

// SanitizedSettings returns the settings for logging. There are no
// secrets in here, but the NATS URL may carry credentials.
func (c *Config) SanitizedSettings() map[string]any {
	s := c.AllSettings()
	if u, ok := s[ConfigNatsURL].(string); ok && strings.Contains(u, "@") {
		s[ConfigNatsURL] = "<redacted>"
	}
	return s
}

// AdjustRelativePaths makes relative file settings relative to basepath,
// normally the directory of the executable.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigWeightsFile} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basepath, p))
	}
}
