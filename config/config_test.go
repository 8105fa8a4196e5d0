package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigBeamWidth), 5)
	is.Equal(cfg.GetFloat64(ConfigFutureDiscount), 0.75)
	is.Equal(cfg.GetBool(ConfigDebug), false)
	is.Equal(cfg.GetString(ConfigWeightsFile), "")
}

func TestArgsOverride(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--beam-width=3", "--debug", "ignored", "--future-discount=0.5"}))
	is.Equal(cfg.GetInt(ConfigBeamWidth), 3)
	is.Equal(cfg.GetFloat64(ConfigFutureDiscount), 0.5)
	is.True(cfg.GetBool(ConfigDebug))
}

func TestEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("TETRABOT_AUTOPLAY_GAMES", "7")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigAutoplayGames), 7)
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--weights-file=data/weights.yaml"}))
	cfg.AdjustRelativePaths("/opt/tetrabot")
	is.Equal(cfg.GetString(ConfigWeightsFile), "/opt/tetrabot/data/weights.yaml")

	is.NoErr(cfg.Load([]string{"--weights-file=/etc/weights.yaml"}))
	cfg.AdjustRelativePaths("/opt/tetrabot")
	is.Equal(cfg.GetString(ConfigWeightsFile), "/etc/weights.yaml")
}

func TestSanitizedSettings(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--nats-url=nats://user:pw@host:4222"}))
	is.Equal(cfg.SanitizedSettings()[ConfigNatsURL], "<redacted>")
}
