// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads desy settings from a YAML file over the built-in defaults,
// then applies DESY_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/emer/desy/melody"
	"github.com/emer/desy/synth"
	"github.com/emer/desy/trm"
	"github.com/emer/desy/voicefx"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// DefaultLyrics is the song sung when no lyrics are given
const DefaultLyrics = `
Daisy Bell, Daisy Bell, I love you,
Please, won't you tell me how you'd like to be sung to?
`

type RelayConfig struct {
	Bind       string `yaml:"bind"`
	StaticDir  string `yaml:"static_dir"`
	STTMode    string `yaml:"stt_mode"` // mock, exec
	STTCommand string `yaml:"stt_command"`
}

type DetectConfig struct {
	MinScore float32 `yaml:"min_score"`
}

type Config struct {
	LogLevel    string               `yaml:"log_level"`
	Output      string               `yaml:"output"`
	Score       string               `yaml:"score"`
	Lyrics      string               `yaml:"lyrics"`
	Seed        uint64               `yaml:"seed"`       // 0 seeds from the clock
	TubeNoise   bool                 `yaml:"tube_noise"` // deterministic tube model noise for consonants
	Voice       string               `yaml:"voice"`
	Temperature *float64             `yaml:"temperature"` // Celsius; unset uses the fixed 35000 cm/s
	Synth       synth.Params         `yaml:"synth"`
	Vowels      map[string]trm.Tract `yaml:"vowels"` // merged over the default vowels
	Melody      []string             `yaml:"melody"`
	Notes       melody.Notes         `yaml:"notes"` // merged over the default notes
	VoiceFX     voicefx.Params       `yaml:"voicefx"`
	Relay       RelayConfig          `yaml:"relay"`
	Detect      DetectConfig         `yaml:"detect"`
}

func Default() Config {
	cfg := Config{
		LogLevel: "info",
		Output:   "daisy_bell.wav",
		Lyrics:   DefaultLyrics,
		Vowels:   make(map[string]trm.Tract),
		Melody:   melody.DefaultSequence(),
		Notes:    melody.DefaultNotes(),
		Relay: RelayConfig{
			Bind:    "localhost:8000",
			STTMode: "mock",
		},
		Detect: DetectConfig{MinScore: 0.5},
	}
	cfg.Synth.Defaults()
	cfg.VoiceFX.Defaults()
	for s, tr := range trm.DefaultVowels() {
		cfg.Vowels[string(s)] = tr
	}
	return cfg
}

// Load reads path over the defaults. An empty path loads the defaults only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.LogLevel, "DESY_LOG_LEVEL")
	overrideString(&cfg.Output, "DESY_OUTPUT")
	overrideString(&cfg.Score, "DESY_SCORE")
	overrideString(&cfg.Lyrics, "DESY_LYRICS")
	overrideUint(&cfg.Seed, "DESY_SEED")
	overrideBool(&cfg.TubeNoise, "DESY_TUBE_NOISE")
	overrideString(&cfg.Voice, "DESY_VOICE")
	if value, ok := os.LookupEnv("DESY_TEMPERATURE"); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			cfg.Temperature = &parsed
		}
	}
	overrideInt(&cfg.Synth.SampleRate, "DESY_SAMPLE_RATE")
	overrideFloat(&cfg.Synth.BendHz, "DESY_BEND_HZ")
	overrideStringSlice(&cfg.Melody, "DESY_MELODY")
	overrideFloat(&cfg.VoiceFX.Pitch.Semitones, "DESY_PITCH_SEMITONES")
	overrideString(&cfg.Relay.Bind, "DESY_RELAY_BIND")
	overrideString(&cfg.Relay.StaticDir, "DESY_RELAY_STATIC_DIR")
	overrideString(&cfg.Relay.STTMode, "DESY_STT_MODE")
	overrideString(&cfg.Relay.STTCommand, "DESY_STT_COMMAND")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideUint(target *uint64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		var trimmed []string
		for _, p := range strings.Split(value, ",") {
			if s := strings.TrimSpace(p); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			*target = trimmed
		}
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every section. Errors wrap ErrInvalid.
func (cfg *Config) Validate() error {
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return invalid("log_level: %v", err)
	}
	if err := cfg.Synth.Validate(); err != nil {
		return invalid("synth: %v", err)
	}
	if _, err := cfg.vowels(); err != nil {
		return err
	}
	if _, err := melody.New(cfg.Melody, cfg.Notes); err != nil {
		return invalid("melody: %v", err)
	}
	if _, err := trm.ParseAgeGender(cfg.Voice); err != nil {
		return invalid("voice: %v", err)
	}
	if err := cfg.VoiceFX.Validate(); err != nil {
		return invalid("voicefx: %v", err)
	}
	switch cfg.Relay.STTMode {
	case "mock":
	case "exec":
		if strings.TrimSpace(cfg.Relay.STTCommand) == "" {
			return invalid("relay.stt_command must be set when stt_mode=exec")
		}
	default:
		return invalid("relay.stt_mode must be one of mock|exec, got %q", cfg.Relay.STTMode)
	}
	if cfg.Detect.MinScore < 0 || cfg.Detect.MinScore > 1 {
		return invalid("detect.min_score must be within [0, 1], got %v", cfg.Detect.MinScore)
	}
	return nil
}

// vowels converts the vowel table to symbols. Keys are single letters and are
// upper cased to match the phonemes of the lyrics.
func (cfg *Config) vowels() (trm.Vowels, error) {
	if len(cfg.Vowels) == 0 {
		return nil, invalid("vowels: table is empty")
	}
	vw := make(trm.Vowels, len(cfg.Vowels))
	for k, tr := range cfg.Vowels {
		k = strings.ToUpper(strings.TrimSpace(k))
		if utf8.RuneCountInString(k) != 1 {
			return nil, invalid("vowels: key %q is not a single letter", k)
		}
		if err := tr.Validate(); err != nil {
			return nil, invalid("vowels: %s: %v", k, err)
		}
		r, _ := utf8.DecodeRuneInString(k)
		vw[r] = tr
	}
	return vw, nil
}

// SoundSpeed is the speed of sound in cm/s for the configured temperature
func (cfg *Config) SoundSpeed() float64 {
	if cfg.Temperature == nil {
		return trm.SoundSpeedCm
	}
	return trm.SpeedOfSoundCm(*cfg.Temperature)
}

// Model builds the tube model for the configured vowels, voice and temperature
func (cfg *Config) Model() (*trm.Model, error) {
	vw, err := cfg.vowels()
	if err != nil {
		return nil, err
	}
	ag, err := trm.ParseAgeGender(cfg.Voice)
	if err != nil {
		return nil, invalid("voice: %v", err)
	}
	return trm.NewModel(vw.Scaled(ag.Scale()), cfg.SoundSpeed()), nil
}

// Singer builds the singer described by the config
func (cfg *Config) Singer() (*synth.Singer, error) {
	md, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	ml, err := melody.New(cfg.Melody, cfg.Notes)
	if err != nil {
		return nil, invalid("melody: %v", err)
	}
	return synth.New(cfg.Synth, md, ml, synth.SourceFor(cfg.Seed, cfg.TubeNoise)), nil
}
