// Package yaml reads and writes site configuration files in YAML.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/sitescrape"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the file at path over DefaultConfig and validates the
// result. Error codes match the TOML loader.
func LoadConfig(path string) (*sitescrape.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, sitescrape.Errorf(sitescrape.ENOTFOUND, "no config file at %s", path)
	} else if err != nil {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "cannot read config %s: %v", path, err)
	}
	return DecodeConfig(data)
}

// DecodeConfig decodes data over DefaultConfig and validates the result.
// Unknown keys are rejected.
func DecodeConfig(data []byte) (*sitescrape.Config, error) {
	cfg := sitescrape.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document leaves the defaults in place.
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncodeConfig writes cfg to w as YAML.
func EncodeConfig(w io.Writer, cfg *sitescrape.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// WriteConfig writes cfg to path, replacing any existing file.
func WriteConfig(path string, cfg *sitescrape.Config) error {
	var buf bytes.Buffer
	if err := EncodeConfig(&buf, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
