// Package catalog holds the static indicator catalog, the EU country set and
// the date range the dashboard is built from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/biter777/countries"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultDocument []byte

// Indicator is a provider code paired with its display name.
type Indicator struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Country is an ISO 3166-1 alpha-2 code, with an optional label used by the
// map geometry when it differs from the ISO short name.
type Country struct {
	Code    string `yaml:"code" json:"code"`
	MapName string `yaml:"map_name,omitempty" json:"-"`
}

// Name returns the English short name of the country, or its code when the
// ISO registry does not know it.
func (c Country) Name() string {
	name := countries.ByName(c.Code).String()
	if name == "" || name == "Unknown" {
		return c.Code
	}
	return name
}

// MapLabel is the name the choropleth geometry uses for this country.
func (c Country) MapLabel() string {
	if c.MapName != "" {
		return c.MapName
	}
	return c.Name()
}

// Catalog is immutable once parsed. Accessors return copies.
type Catalog struct {
	Source     string      `yaml:"source"`
	SourceURL  string      `yaml:"source_url"`
	StartYear  int         `yaml:"start_year"`
	EndYear    int         `yaml:"end_year"`
	Indicators []Indicator `yaml:"indicators"`
	Countries  []Country   `yaml:"countries"`

	byCode    map[string]Indicator
	byName    map[string]Indicator
	countries map[string]Country
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid embedded catalog: %v", err))
	}
	return c
})

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog()
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	if len(c.Indicators) == 0 {
		return errors.New("catalog has no indicators")
	}
	if len(c.Countries) == 0 {
		return errors.New("catalog has no countries")
	}
	if c.StartYear <= 0 || c.EndYear < c.StartYear {
		return fmt.Errorf("invalid year range %d..%d", c.StartYear, c.EndYear)
	}

	c.byCode = make(map[string]Indicator, len(c.Indicators))
	c.byName = make(map[string]Indicator, len(c.Indicators))
	for _, ind := range c.Indicators {
		if ind.Code == "" || ind.Name == "" {
			return fmt.Errorf("indicator %q has an empty code or name", ind.Code+ind.Name)
		}
		if _, dup := c.byCode[ind.Code]; dup {
			return fmt.Errorf("duplicate indicator code %q", ind.Code)
		}
		if _, dup := c.byName[ind.Name]; dup {
			return fmt.Errorf("duplicate indicator name %q", ind.Name)
		}
		c.byCode[ind.Code] = ind
		c.byName[ind.Name] = ind
	}

	c.countries = make(map[string]Country, len(c.Countries))
	for i, country := range c.Countries {
		code := strings.ToUpper(strings.TrimSpace(country.Code))
		if len(code) != 2 {
			return fmt.Errorf("invalid country code %q", country.Code)
		}
		if _, dup := c.countries[code]; dup {
			return fmt.Errorf("duplicate country code %q", code)
		}
		c.Countries[i].Code = code
		c.countries[code] = c.Countries[i]
	}
	return nil
}

// NameFor returns the display name of an indicator code.
func (c *Catalog) NameFor(code string) (string, bool) {
	ind, ok := c.byCode[code]
	return ind.Name, ok
}

// CodeFor returns the provider code of an indicator display name.
func (c *Catalog) CodeFor(name string) (string, bool) {
	ind, ok := c.byName[name]
	return ind.Code, ok
}

// Lookup finds an indicator by code or display name.
func (c *Catalog) Lookup(codeOrName string) (Indicator, bool) {
	if ind, ok := c.byCode[codeOrName]; ok {
		return ind, true
	}
	ind, ok := c.byName[codeOrName]
	return ind, ok
}

// IndicatorList returns the indicators in catalog order.
func (c *Catalog) IndicatorList() []Indicator {
	return slices.Clone(c.Indicators)
}

// Codes returns the indicator codes in catalog order.
func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.Indicators))
	for i, ind := range c.Indicators {
		codes[i] = ind.Code
	}
	return codes
}

// Names returns the indicator display names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Indicators))
	for i, ind := range c.Indicators {
		names[i] = ind.Name
	}
	return names
}

// Position is the catalog index of an indicator display name, or -1.
func (c *Catalog) Position(name string) int {
	return slices.IndexFunc(c.Indicators, func(ind Indicator) bool { return ind.Name == name })
}

// CountryList returns the country set in catalog order.
func (c *Catalog) CountryList() []Country {
	return slices.Clone(c.Countries)
}

// CountryCodes returns the ISO codes of the country set.
func (c *Catalog) CountryCodes() []string {
	codes := make([]string, len(c.Countries))
	for i, country := range c.Countries {
		codes[i] = country.Code
	}
	return codes
}

// Country looks up a member of the country set by ISO code.
func (c *Catalog) Country(code string) (Country, bool) {
	country, ok := c.countries[strings.ToUpper(code)]
	return country, ok
}

// InRange reports whether year lies within the configured date range.
func (c *Catalog) InRange(year int) bool {
	return year >= c.StartYear && year <= c.EndYear
}
