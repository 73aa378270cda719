// Package toml loads bizscan settings from TOML files.
package toml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/bizscan"
	"github.com/pelletier/go-toml/v2"
)

// LoadSettings reads settings from the TOML file at path. Keys missing from
// the file keep their default values. An empty path returns the defaults.
func LoadSettings(path string) (bizscan.Settings, error) {
	if path == "" {
		return bizscan.DefaultSettings(), nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return bizscan.Settings{}, bizscan.Errorf(bizscan.ENOTFOUND, "settings file not found: %s", path)
	} else if err != nil {
		return bizscan.Settings{}, err
	}
	defer f.Close()

	return DecodeSettings(f)
}

// DecodeSettings decodes TOML settings from r over the defaults and
// validates the result. Unknown keys are rejected.
func DecodeSettings(r io.Reader) (bizscan.Settings, error) {
	settings := bizscan.DefaultSettings()

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return bizscan.Settings{}, bizscan.Errorf(bizscan.EINVALID, "unknown settings: %s", strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return bizscan.Settings{}, bizscan.Errorf(bizscan.EINVALID, "settings line %d column %d: %s", row, col, decodeErr.Error())
		}
		return bizscan.Settings{}, bizscan.Errorf(bizscan.EINVALID, "invalid settings: %v", err)
	}

	if err := settings.Validate(); err != nil {
		return bizscan.Settings{}, err
	}
	return settings, nil
}

// EncodeSettings writes settings as TOML to w.
func EncodeSettings(w io.Writer, settings bizscan.Settings) error {
	return toml.NewEncoder(w).Encode(settings)
}
