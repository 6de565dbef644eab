package manifest

import "github.com/spf13/viper"

// Registers the built-in pins. These reproduce a known-good Luanti stable-5
// Windows build and are what a run without any manifest file gets.
func setDefaults(v *viper.Viper) {
	v.SetDefault("luanti.url", "https://github.com/minetest/minetest.git")
	v.SetDefault("luanti.ref", "stable-5")
	v.SetDefault("game.url", "https://github.com/minetest/minetest_game.git")
	v.SetDefault("game.ref", "stable-5")
	v.SetDefault("game.name", "minetest_game")

	v.SetDefault("vcpkg.url", "https://github.com/microsoft/vcpkg.git")
	v.SetDefault("vcpkg.ref", "master")
	v.SetDefault("vcpkg.packages", []string{
		"zlib",
		"zstd",
		"curl[winssl]",
		"openal-soft",
		"libvorbis",
		"libogg",
		"libjpeg-turbo",
		"sqlite3",
		"freetype",
		"luajit",
		"gmp",
		"jsoncpp",
		"gettext[tools]",
		"sdl2",
		"opengl",
		"opengl-registry",
	})

	v.SetDefault("luarocks.url", "https://github.com/luarocks/luarocks.git")
	v.SetDefault("luarocks.ref", "master")
	v.SetDefault("luarocks.rocks", []map[string]string{
		{"name": "luasocket", "probe": "socket/core.dll"},
		{"name": "lua-cjson", "probe": "cjson.dll"},
	})

	v.SetDefault("cmake.generator", "Visual Studio 16 2019")
	v.SetDefault("cmake.definitions", []string{
		"CMAKE_TOOLCHAIN_FILE=${vcpkg}/scripts/buildsystems/vcpkg.cmake",
		"CMAKE_BUILD_TYPE=Release",
		"ENABLE_GETTEXT=1",
		"GETTEXT_ICONV_DLL=${vcpkg}/buildtrees/libiconv/${triplet}-rel/libiconv.dll",
		"ENABLE_CURSES=0",
		"RUN_IN_PLACE=TRUE",
	})

	v.SetDefault("packaging.trees", []string{
		"builtin",
		"client",
		"clientmods",
		"doc",
		"fonts",
		"games",
		"mods",
		"locale",
		"textures",
	})
	v.SetDefault("packaging.files", []string{"LICENSE.txt"})
	v.SetDefault("packaging.exclude", []string{"luanti.pdb", ".git"})
	v.SetDefault("packaging.extra_dirs", []string{"worlds"})
}
