package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/gptgrid/internal/faults"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvGPT             = "GPTGRID_GPT"
	EnvLogLevel        = "GPTGRID_LOG_LEVEL"
	EnvLogFormat       = "GPTGRID_LOG_FORMAT"
	EnvS3Endpoint      = "GPTGRID_S3_ENDPOINT"
	EnvS3Secure        = "GPTGRID_S3_SECURE"
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvRegion          = "AWS_REGION"
)

// DefaultEnvFile is loaded when present and no env file is named.
const DefaultEnvFile = ".env"

type Settings struct {
	// GPT is the gpt executable, a path or a name looked up in PATH.
	GPT     string  `yaml:"gpt"`
	Log     Log     `yaml:"log"`
	Report  Report  `yaml:"report"`
	Storage Storage `yaml:"storage"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Report struct {
	WrapWidth uint `yaml:"wrap_width"`
}

// Storage configures the S3 compatible store used for s3:// inputs.
type Storage struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Region          string `yaml:"region"`
	Secure          bool   `yaml:"secure"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		GPT:     "gpt",
		Log:     Log{Level: "info", Format: "text"},
		Report:  Report{WrapWidth: 80},
		Storage: Storage{Secure: true},
	}
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Load layers the YAML file at path (skipped when empty), the env files and
// the environment seen through lookup over the defaults. With no env files
// named, DefaultEnvFile is read if it exists.
func Load(path string, envFiles []string, lookup LookupFunc) (*Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &faults.IOError{Op: "read settings", Path: path, Err: err}
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, &faults.ConfigurationError{Subject: "settings file " + path, Err: err}
		}
	}

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := s.applyEnv(get); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil, nil
		}
		files = []string{DefaultEnvFile}
	}
	vars, err := godotenv.Read(files...)
	if err != nil {
		return nil, &faults.ConfigurationError{Subject: "env files " + strings.Join(files, ", "), Err: err}
	}
	return vars, nil
}

func (s *Settings) applyEnv(get LookupFunc) error {
	strs := map[string]*string{
		EnvGPT:             &s.GPT,
		EnvLogLevel:        &s.Log.Level,
		EnvLogFormat:       &s.Log.Format,
		EnvS3Endpoint:      &s.Storage.Endpoint,
		EnvAccessKeyID:     &s.Storage.AccessKeyID,
		EnvSecretAccessKey: &s.Storage.SecretAccessKey,
		EnvRegion:          &s.Storage.Region,
	}
	for key, dst := range strs {
		if v, ok := get(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := get(EnvS3Secure); ok && v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return &faults.ConfigurationError{Subject: EnvS3Secure, Err: err}
		}
		s.Storage.Secure = secure
	}
	return nil
}

// Validate checks the values the logger and engine depend on.
func (s *Settings) Validate() error {
	s.Log.Level = strings.ToLower(s.Log.Level)
	s.Log.Format = strings.ToLower(s.Log.Format)

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return &faults.ConfigurationError{Subject: "log level", Reason: fmt.Sprintf("%q must be 'debug', 'info', 'warn', or 'error'", s.Log.Level)}
	}
	if s.Log.Format != "text" && s.Log.Format != "json" {
		return &faults.ConfigurationError{Subject: "log format", Reason: fmt.Sprintf("%q must be 'text' or 'json'", s.Log.Format)}
	}
	if s.GPT == "" {
		return &faults.ConfigurationError{Subject: "gpt", Reason: "path is empty"}
	}
	return nil
}
