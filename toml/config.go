// Package toml reads and writes site configuration files in TOML.
package toml

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/sitescrape"
)

const header = "# sitescrape site configuration\n\n"

// LoadConfig reads the file at path over DefaultConfig and validates the
// result. A missing file returns ENOTFOUND; an unreadable file, a syntax
// error, an unknown key or an invalid value returns EINVALID.
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
func DecodeConfig(data []byte) (*sitescrape.Config, error) {
	cfg := sitescrape.DefaultConfig()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "config: %v", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncodeConfig writes cfg to w as TOML.
func EncodeConfig(w io.Writer, cfg *sitescrape.Config) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(cfg)
}

// WriteConfig writes cfg to path, replacing any existing file.
func WriteConfig(path string, cfg *sitescrape.Config) error {
	var buf bytes.Buffer
	if err := EncodeConfig(&buf, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
