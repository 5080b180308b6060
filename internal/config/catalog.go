package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// ManagedLaw is a statute or rule kept in sync with the law information API.
type ManagedLaw struct {
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
	Type     string `yaml:"type" json:"type"` // law or admrul
}

type Catalog struct {
	Laws []ManagedLaw `yaml:"laws" json:"laws"`
}

var ErrUnknownLaw = errors.New("law is not in the managed catalog")

// DefaultCatalog is used when no catalog file exists.
func DefaultCatalog() *Catalog {
	return &Catalog{Laws: []ManagedLaw{
		{Name: "자본시장과 금융투자업에 관한 법률", Category: "법령", Type: "law"},
		{Name: "자본시장과 금융투자업에 관한 법률 시행령", Category: "법령", Type: "law"},
		{Name: "금융투자업규정", Category: "감독규정", Type: "admrul"},
		{Name: "금융투자업 감독규정", Category: "감독규정", Type: "admrul"},
	}}
}

// LoadCatalog reads a YAML catalog. A missing file yields DefaultCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("read catalog file failed: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.UnmarshalStrict(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog file failed: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Laws))
	for i, law := range c.Laws {
		if strings.TrimSpace(law.Name) == "" || strings.TrimSpace(law.Category) == "" {
			return fmt.Errorf("catalog entry %d: name and category are required", i)
		}
		if law.Type != "law" && law.Type != "admrul" {
			return fmt.Errorf("catalog entry %q: invalid type %q", law.Name, law.Type)
		}
		key := law.Name + "\x00" + law.Category
		if seen[key] {
			return fmt.Errorf("catalog entry %q: duplicate", law.Name)
		}
		seen[key] = true
	}
	return nil
}

// Select returns the named laws in catalog order. No names selects all.
func (c *Catalog) Select(names []string) ([]ManagedLaw, error) {
	if len(names) == 0 {
		out := make([]ManagedLaw, len(c.Laws))
		copy(out, c.Laws)
		return out, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}
	var out []ManagedLaw
	for _, law := range c.Laws {
		if want[law.Name] {
			out = append(out, law)
			delete(want, law.Name)
		}
	}
	for name := range want {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLaw, name)
	}
	return out, nil
}
