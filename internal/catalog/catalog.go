// Package catalog loads the immutable crop reference data the placement
// engine resolves crop identifiers against.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

//go:embed crops.yaml
var builtinYAML []byte

// catalogFile is the on-disk layout of a crop catalog.
type catalogFile struct {
	Crops []types.Crop `yaml:"crops"`
}

// Catalog is a read-only crop lookup. It is safe for concurrent use because
// nothing mutates it after construction.
type Catalog struct {
	crops map[string]types.Crop
	ids   []string
}

var _ types.CropLookup = (*Catalog)(nil)

// Builtin returns the catalog compiled into the binary. It panics if the
// embedded data does not parse.
func Builtin() *Catalog {
	c, err := Parse(builtinYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML. Crops without an id are rejected; duplicate ids
// keep the last entry.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Crops...)
}

// New builds a catalog from crops. Tests use it to inject fixtures.
func New(crops ...types.Crop) (*Catalog, error) {
	c := &Catalog{crops: make(map[string]types.Crop, len(crops))}
	for i, crop := range crops {
		if crop.CropID == "" {
			return nil, fmt.Errorf("crop %d: %w", i, types.ErrInvalidID)
		}
		if _, dup := c.crops[crop.CropID]; !dup {
			c.ids = append(c.ids, crop.CropID)
		}
		c.crops[crop.CropID] = crop
	}
	sort.Strings(c.ids)
	return c, nil
}

// CropByID returns a copy of the crop for id.
func (c *Catalog) CropByID(id string) (*types.Crop, bool) {
	crop, ok := c.crops[id]
	if !ok {
		return nil, false
	}
	return &crop, true
}

// All returns every crop ordered by id.
func (c *Catalog) All() []types.Crop {
	out := make([]types.Crop, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.crops[id])
	}
	return out
}

// Len returns the number of crops.
func (c *Catalog) Len() int {
	return len(c.ids)
}
