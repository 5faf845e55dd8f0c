// Package config contains utilities for loading configs
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath    = "/etc/admingate/admingate.yaml"
	DefaultAdminUsername = "admin"
	DefaultHostOrigin    = "http://localhost:8080"
	DefaultPort          = 8080
	DefaultLogLevel      = "info"
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

func splitFieldList(param string) []string {
	// "A,B,C" or "A B C"
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allOrNothing implements a cross-field validator for go-playground/validator.
//
// The validator succeeds only if all listed fields are zero or all listed
// fields are non-zero. It must be attached to a placeholder field; field
// names come from the tag parameter (e.g. `validate:"allOrNothing=A B"`).
// Nil pointers and interfaces count as zero.
//
// A missing field or an empty parameter fails validation to signal
// misconfiguration.
func allOrNothing(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true // nothing to validate
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	if len(names) == 0 {
		return false
	}

	hasZero := false
	hasNonZero := false

	for _, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() {
			return false // field name typo / not found
		}

		for (f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface) && !f.IsNil() {
			f = f.Elem()
		}

		if f.IsZero() {
			hasZero = true
		} else {
			hasNonZero = true
		}

		if hasZero && hasNonZero {
			return false
		}
	}

	return true
}

func registerAllOrNothing(v *validator.Validate) {
	_ = v.RegisterValidation("allOrNothing", allOrNothing)
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		switch e.Tag() {
		case "allOrNothing":
			// "Config.Server.Validate" -> "Server"
			parts := strings.Split(e.Namespace(), ".")
			var structName string
			//nolint:mnd
			if len(parts) >= 2 {
				structName = parts[len(parts)-2]
			}

			var fields string
			switch structName {
			case "Server":
				fields = "TLSCertFile and TLSKeyFile"
			default:
				fields = "all related fields"
			}

			return fmt.Errorf(
				"%s configuration is incomplete: either all fields must be set (%s) or all must be empty",
				structName, fields)
		case "excludes":
			return fmt.Errorf("%s must not contain %q", e.Namespace(), e.Param())
		}
	}

	return err
}

type Admin struct {
	Username string `yaml:"username" validate:"required,excludes=:"`
}

type Server struct {
	Port        uint16 `yaml:"port" validate:"required"`
	TLSCertFile string `yaml:"tls_cert_file" validate:"omitempty,filepath"`
	TLSKeyFile  string `yaml:"tls_key_file" validate:"omitempty,filepath"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=TLSCertFile TLSKeyFile"`
}

// TLSEnabled reports whether the server should serve HTTPS.
func (s Server) TLSEnabled() bool {
	return s.TLSCertFile != "" && s.TLSKeyFile != ""
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type Config struct {
	Admin      Admin  `yaml:"admin"`
	Server     Server `yaml:"server"`
	Log        Log    `yaml:"log"`
	HostOrigin string `yaml:"host_origin" validate:"url"`
	Env        string `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
}

// Default returns a config populated with default values.
func Default() Config {
	return Config{
		Admin:      Admin{Username: DefaultAdminUsername},
		Server:     Server{Port: DefaultPort},
		Log:        Log{Level: DefaultLogLevel},
		HostOrigin: DefaultHostOrigin,
		Env:        EnvDev,
	}
}

func validate(config Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerAllOrNothing(v)
	if err := v.Struct(config); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadConfigFromEnv() (Config, error) {
	conf := Config{
		Env:        loadWithDefault("ENV", EnvDev),
		HostOrigin: loadWithDefault("HOST_ORIGIN", DefaultHostOrigin),
		Admin: Admin{
			Username: loadWithDefault("ADMIN_USERNAME", DefaultAdminUsername),
		},
		Log: Log{
			Level: strings.ToLower(loadWithDefault("LOG_LEVEL", DefaultLogLevel)),
		},
		Server: Server{
			TLSCertFile: loadWithDefault("TLS_CERT_FILE", ""),
			TLSKeyFile:  loadWithDefault("TLS_KEY_FILE", ""),
		},
	}

	serverPort := loadWithDefault("SERVER_PORT", strconv.Itoa(DefaultPort))
	if port, err := strconv.ParseUint(serverPort, 10, 16); err != nil {
		return conf, fmt.Errorf("invalid SERVER_PORT (%q): %w", serverPort, err)
	} else {
		conf.Server.Port = uint16(port)
	}

	if err := validate(conf); err != nil {
		return conf, err
	}

	return conf, nil
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Set defaults
	defaults := Default()
	if config.Admin.Username == "" {
		config.Admin.Username = defaults.Admin.Username
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.HostOrigin == "" {
		config.HostOrigin = defaults.HostOrigin
	}
	if config.Env == "" {
		config.Env = defaults.Env
	}

	if err := validate(config); err != nil {
		return Config{}, err
	}

	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}

// LoadConfig reads the YAML file at CONFIG_PATH if it exists and falls
// back to environment variables otherwise.
func LoadConfig() (Config, error) {
	path := loadWithDefault("CONFIG_PATH", DefaultConfigPath)
	if configFileExists(path) {
		return loadConfigFromFile(path)
	}

	return loadConfigFromEnv()
}
