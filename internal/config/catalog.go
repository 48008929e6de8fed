package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"basket-backtest/internal/model"
)

// AssetPreset is an asset file found in the catalog directory. ID is the
// file name without extension.
type AssetPreset struct {
	ID string `json:"id"`
	AssetConfig
}

// Catalog is the set of presets in one directory.
type Catalog struct {
	Dir    string
	Assets []AssetPreset
	byID   map[string]AssetPreset
}

// LoadCatalog reads every *.yaml / *.yml in dir. Files that fail to parse or
// lack a resolution are skipped and reported in the second return value.
// A missing directory yields an empty catalog.
func LoadCatalog(dir string) (*Catalog, []error, error) {
	c := &Catalog{Dir: dir, byID: map[string]AssetPreset{}}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return c, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read asset dir: %w", err)
	}

	var skipped []error
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		asset, err := LoadAssetFile(path)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		if _, err := model.ParseResolution(asset.Resolution); err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", path, err))
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ext)
		if asset.Name == "" {
			asset.Name = id
		}
		p := AssetPreset{ID: id, AssetConfig: asset}
		c.Assets = append(c.Assets, p)
		c.byID[id] = p
	}
	sort.Slice(c.Assets, func(i, j int) bool { return c.Assets[i].ID < c.Assets[j].ID })
	return c, skipped, nil
}

// Get looks up a preset by ID.
func (c *Catalog) Get(id string) (AssetPreset, bool) {
	if c == nil {
		return AssetPreset{}, false
	}
	p, ok := c.byID[id]
	return p, ok
}
