// Package catalog loads the static role roster once at startup
package catalog

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
)

//go:embed roles.yaml
var embeddedRoles []byte

type document struct {
	Roles []*role.Definition `yaml:"roles"`
}

// Catalog is an immutable set of validated role definitions
type Catalog struct {
	roles map[role.Codename]*role.Definition
}

// Load parses the embedded roster
func Load() (*Catalog, error) {
	return Parse(embeddedRoles)
}

// LoadFile parses a roster from disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrapf(err, "reading roles %s", path)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, apperr.Wrapf(err, "loading roles %s", path)
	}
	return cat, nil
}

// Parse decodes and validates a roster. Any incomplete definition fails the
// whole load.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeInvalidDefinition, "parsing roles yaml")
	}
	if len(doc.Roles) == 0 {
		return nil, apperr.InvalidDefinitionf("roles yaml defines no roles")
	}

	cat := &Catalog{roles: make(map[role.Codename]*role.Definition, len(doc.Roles))}
	for i, def := range doc.Roles {
		if err := def.Validate(); err != nil {
			return nil, apperr.Wrapf(err, "role #%d", i)
		}
		if _, exists := cat.roles[def.Codename]; exists {
			return nil, apperr.InvalidDefinitionf("duplicate role codename %q", def.Codename).
				WithMeta("codename", string(def.Codename))
		}
		cat.roles[def.Codename] = def
	}

	slog.Debug("role catalog loaded", "roles", len(cat.roles))
	return cat, nil
}

// Get returns the definition for a codename
func (c *Catalog) Get(codename role.Codename) (*role.Definition, error) {
	def, ok := c.roles[codename]
	if !ok {
		return nil, apperr.NotFoundf("role %q not found", codename).
			WithMeta("codename", string(codename))
	}
	return def, nil
}

// MustGet is Get for wiring code where a missing role is a build defect
func (c *Catalog) MustGet(codename role.Codename) *role.Definition {
	def, err := c.Get(codename)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return def
}

// Codenames lists every role in stable order
func (c *Catalog) Codenames() []role.Codename {
	out := make([]role.Codename, 0, len(c.roles))
	for codename := range c.roles {
		out = append(out, codename)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of roles
func (c *Catalog) Len() int {
	return len(c.roles)
}
