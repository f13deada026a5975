package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hadley31/chess-image-generator/pkg/render"
)

// fileConfig holds user defaults loaded from the config file
// (~/.config/chessimg/config.toml). All fields are optional; unset
// fields fall back to the built-in defaults.
type fileConfig struct {
	Size      int    `toml:"size"`
	Style     string `toml:"style"`
	Light     string `toml:"light"`
	Dark      string `toml:"dark"`
	Highlight string `toml:"highlight"`
	Flipped   bool   `toml:"flipped"`
	NoLabels  bool   `toml:"no_labels"`
}

// loadFileConfig reads the config file at path. A missing file is not an
// error; it returns a zero config so built-in defaults apply.
func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, err
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// renderConfig converts the file config into a render.Config. Zero-value
// fields are left unset so the render package applies its own defaults.
func (fc fileConfig) renderConfig() render.Config {
	return render.Config{
		Size:      fc.Size,
		Style:     fc.Style,
		Light:     fc.Light,
		Dark:      fc.Dark,
		Highlight: fc.Highlight,
		Flipped:   fc.Flipped,
		NoLabels:  fc.NoLabels,
	}
}
