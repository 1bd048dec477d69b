// Package gradleparse adapts a Gradle project's build script and version
// catalog into direct dependency coordinates, mirroring the Maven POM
// pipeline's output shape so the façade can treat either manifest kind
// uniformly.
package gradleparse

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Catalog is a parsed gradle/libs.versions.toml version catalog.
type Catalog struct {
	Versions  map[string]string
	Libraries map[string]Library
	Plugins   map[string]Plugin
}

// Library is one [libraries] entry, fully resolved (version.ref expanded).
type Library struct {
	Group   string
	Name    string
	Version string
}

// Plugin is one [plugins] entry, fully resolved.
type Plugin struct {
	ID      string
	Version string
}

// rawCatalog mirrors the TOML shape of gradle/libs.versions.toml. Library
// and plugin entries are decoded generically since each alias may use
// either the short string form ("group:name:version") or the inline-table
// form ({ module = "...", version.ref = "..." }).
type rawCatalog struct {
	Versions  map[string]string      `toml:"versions"`
	Libraries map[string]interface{} `toml:"libraries"`
	Plugins   map[string]interface{} `toml:"plugins"`
}

// ParseCatalog reads and decodes a gradle/libs.versions.toml file,
// resolving every version.ref indirection against the [versions] table.
func ParseCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalogBytes(data)
}

// ParseCatalogBytes decodes catalog TOML content already in memory.
func ParseCatalogBytes(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, err
	}

	cat := &Catalog{
		Versions:  raw.Versions,
		Libraries: map[string]Library{},
		Plugins:   map[string]Plugin{},
	}
	if cat.Versions == nil {
		cat.Versions = map[string]string{}
	}

	for key, v := range raw.Libraries {
		lib, ok := decodeLibrary(v, cat.Versions)
		if ok {
			cat.Libraries[key] = lib
		}
	}

	for key, v := range raw.Plugins {
		plugin, ok := decodePlugin(v, cat.Versions)
		if ok {
			cat.Plugins[key] = plugin
		}
	}

	return cat, nil
}

// decodeLibrary handles both catalog alias shapes for a single entry.
func decodeLibrary(v interface{}, versions map[string]string) (Library, bool) {
	switch val := v.(type) {
	case string:
		// "group:name:version"
		parts := strings.SplitN(val, ":", 3)
		if len(parts) < 2 {
			return Library{}, false
		}
		lib := Library{Group: parts[0], Name: parts[1]}
		if len(parts) == 3 {
			lib.Version = parts[2]
		}
		return lib, true
	case map[string]interface{}:
		lib := Library{}
		if module, ok := val["module"].(string); ok {
			parts := strings.SplitN(module, ":", 2)
			if len(parts) == 2 {
				lib.Group, lib.Name = parts[0], parts[1]
			}
		} else {
			lib.Group, _ = val["group"].(string)
			lib.Name, _ = val["name"].(string)
		}
		lib.Version = resolveVersionField(val["version"], versions)
		if lib.Group == "" || lib.Name == "" {
			return Library{}, false
		}
		return lib, true
	default:
		return Library{}, false
	}
}

func decodePlugin(v interface{}, versions map[string]string) (Plugin, bool) {
	switch val := v.(type) {
	case string:
		parts := strings.SplitN(val, ":", 2)
		if len(parts) < 1 {
			return Plugin{}, false
		}
		plugin := Plugin{ID: parts[0]}
		if len(parts) == 2 {
			plugin.Version = parts[1]
		}
		return plugin, true
	case map[string]interface{}:
		plugin := Plugin{}
		plugin.ID, _ = val["id"].(string)
		plugin.Version = resolveVersionField(val["version"], versions)
		if plugin.ID == "" {
			return Plugin{}, false
		}
		return plugin, true
	default:
		return Plugin{}, false
	}
}

// resolveVersionField handles the version key's two shapes: a plain
// string, or a nested { ref = "..." } table produced by TOML's dotted-key
// syntax (version.ref = "core" parses as version = {ref = "core"}).
func resolveVersionField(v interface{}, versions map[string]string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]interface{}:
		if ref, ok := val["ref"].(string); ok {
			return versions[ref]
		}
	}
	return ""
}

// Resolve looks up a libs.xyz.abc version-catalog reference (the
// dot-joined path after the "libs." prefix has been stripped by the
// caller) against the library table, trying both dot and hyphen spellings
// since Gradle accepts either in libs.versions.toml alias keys.
func (c *Catalog) Resolve(ref string) (Library, bool) {
	if lib, ok := c.Libraries[ref]; ok {
		return lib, ok
	}
	hyphenated := strings.ReplaceAll(ref, ".", "-")
	lib, ok := c.Libraries[hyphenated]
	return lib, ok
}
