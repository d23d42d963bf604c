// Package config registers every setting with viper and loads melodeck.toml.
package config

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/melodeck/melodeck/constant"
	"github.com/melodeck/melodeck/filesystem"
	"github.com/melodeck/melodeck/key"
	"github.com/melodeck/melodeck/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps a key onto its environment variable suffix.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults and MELODECK_* variables, then reads the config file if there is one.
func Setup() error {
	viper.SetConfigName(constant.Melodeck)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Melodeck)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return Validate()
}

// Validate rejects settings the player cannot run with.
func Validate() error {
	var errs []error

	switch backend := strings.ToLower(viper.GetString(key.PlayerBackend)); backend {
	case constant.BackendBeep, constant.BackendMPV:
	default:
		errs = append(errs, fmt.Errorf("%s: unknown backend %q", key.PlayerBackend, backend))
	}

	if size := viper.GetInt(key.VisualFFTSize); size < 2 || bits.OnesCount(uint(size)) != 1 {
		errs = append(errs, fmt.Errorf("%s: %d is not a power of two", key.VisualFFTSize, size))
	}

	if fps := viper.GetInt(key.VisualFPS); fps <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be positive, got %d", key.VisualFPS, fps))
	}

	if v := viper.GetFloat64(key.VolumeDefault); v < 0 || v > 1 {
		errs = append(errs, fmt.Errorf("%s: %g is outside [0, 1]", key.VolumeDefault, v))
	}

	return errors.Join(errs...)
}
