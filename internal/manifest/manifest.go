package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/luantibuild/luantibuild/internal/paths"
)

// Base name of the manifest file, searched as luantibuild.yaml.
const configName = "luantibuild"

var ErrManifest = errors.New("invalid manifest")

// Manifest pins everything a build consumes: source repositories, native
// dependencies, Lua rocks, CMake flags, and the distribution layout.
type Manifest struct {
	Luanti    Source    `mapstructure:"luanti"`
	Game      Game      `mapstructure:"game"`
	Vcpkg     Vcpkg     `mapstructure:"vcpkg"`
	LuaRocks  LuaRocks  `mapstructure:"luarocks"`
	CMake     CMake     `mapstructure:"cmake"`
	Packaging Packaging `mapstructure:"packaging"`
}

// Source pins a git repository to a branch or tag.
type Source struct {
	URL string `mapstructure:"url"`
	Ref string `mapstructure:"ref"`
}

// Game pins the default game shipped inside the distribution.
type Game struct {
	Source `mapstructure:",squash"`

	// Name is the directory the game occupies under dist games/.
	Name string `mapstructure:"name"`
}

// Vcpkg pins the dependency manager and the native packages it builds.
type Vcpkg struct {
	Source `mapstructure:",squash"`

	Packages []string `mapstructure:"packages"`
}

// LuaRocks pins the rocks manager and the rocks bundled into the
// distribution.
type LuaRocks struct {
	Source `mapstructure:",squash"`

	Rocks []Rock `mapstructure:"rocks"`
}

// Rock names one Lua module to install and the file that proves it is
// installed, relative to the rocks tree lib/lua/5.1 directory.
type Rock struct {
	Name  string `mapstructure:"name"`
	Probe string `mapstructure:"probe"`
}

// CMake holds the generator and cache definitions for configuring the
// engine build.
//
// Definitions are KEY=VALUE strings rather than a map so their casing
// survives the YAML round trip. The values may reference ${vcpkg} and
// ${triplet}, expanded against the active layout when the configure stage
// is built.
type CMake struct {
	Generator   string   `mapstructure:"generator"`
	Definitions []string `mapstructure:"definitions"`
}

// Packaging describes how the distribution is assembled from the build
// outputs.
type Packaging struct {
	// Trees are directories copied verbatim from the engine checkout.
	Trees []string `mapstructure:"trees"`
	// Files are single files copied from the engine checkout root.
	Files []string `mapstructure:"files"`
	// Exclude lists base names dropped from every copied tree.
	Exclude []string `mapstructure:"exclude"`
	// ExtraDirs are empty directories created inside the distribution.
	ExtraDirs []string `mapstructure:"extra_dirs"`
}

// Loads the manifest, layering an optional YAML file over the built-in pins.
//
// With an explicit path the file must exist. Otherwise luantibuild.yaml is
// searched in the working directory and the user config directory, and its
// absence simply yields the defaults.
func Load(path string) (*Manifest, error) {
	v := viper.New()
	setDefaults(v)
	configureFile(v, path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %w", ErrManifest, err)
		}
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func configureFile(v *viper.Viper, explicit string) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		return
	}
	v.SetConfigName(configName)
	v.AddConfigPath(".")
	v.AddConfigPath(paths.ConfigDir())
}

func (m *Manifest) validate() error {
	var missing []string
	check := func(key, val string) {
		if val == "" {
			missing = append(missing, key)
		}
	}

	check("luanti.url", m.Luanti.URL)
	check("luanti.ref", m.Luanti.Ref)
	check("game.url", m.Game.URL)
	check("game.ref", m.Game.Ref)
	check("game.name", m.Game.Name)
	check("vcpkg.url", m.Vcpkg.URL)
	check("vcpkg.ref", m.Vcpkg.Ref)
	check("luarocks.url", m.LuaRocks.URL)
	check("luarocks.ref", m.LuaRocks.Ref)
	check("cmake.generator", m.CMake.Generator)

	if len(m.Vcpkg.Packages) == 0 {
		missing = append(missing, "vcpkg.packages")
	}
	if len(m.LuaRocks.Rocks) == 0 {
		missing = append(missing, "luarocks.rocks")
	}
	for i, r := range m.LuaRocks.Rocks {
		check(fmt.Sprintf("luarocks.rocks[%d].name", i), r.Name)
		check(fmt.Sprintf("luarocks.rocks[%d].probe", i), r.Probe)
	}
	if len(m.Packaging.Trees) == 0 {
		missing = append(missing, "packaging.trees")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing keys: %s", ErrManifest, strings.Join(missing, ", "))
	}
	return nil
}
