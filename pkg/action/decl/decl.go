package decl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ib-77/actionchain/pkg/action"
)

var (
	ErrUnknownUnit     = errors.New("decl: unknown unit")
	ErrUnknownPipeline = errors.New("decl: unknown pipeline")
	ErrIncludeCycle    = errors.New("decl: include cycle")
	ErrInvalidItem     = errors.New("decl: item needs exactly one of use or include")
	ErrDuplicateUnit   = errors.New("decl: unit already registered")
	ErrNilUnit         = errors.New("decl: nil unit")
	ErrNilCatalog      = errors.New("decl: nil catalog")
	ErrExtraDocument   = errors.New("decl: more than one YAML document")
)

// Catalog maps names used in pipeline files to units. Only registered units
// can be referenced.
type Catalog[E any] struct {
	units map[string]*action.Unit[E]
}

// NewCatalog returns a catalog holding units.
func NewCatalog[E any](units ...*action.Unit[E]) (*Catalog[E], error) {
	c := &Catalog[E]{units: make(map[string]*action.Unit[E])}
	for _, u := range units {
		if err := c.Register(u); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds u under its name.
func (c *Catalog[E]) Register(u *action.Unit[E]) error {
	if c == nil {
		return ErrNilCatalog
	}
	if u == nil {
		return ErrNilUnit
	}
	if _, ok := c.units[u.Name]; ok {
		return fmt.Errorf("%q: %w", u.Name, ErrDuplicateUnit)
	}
	c.units[u.Name] = u
	return nil
}

// Lookup returns the unit registered under name. A nil catalog is empty.
func (c *Catalog[E]) Lookup(name string) (*action.Unit[E], bool) {
	if c == nil {
		return nil, false
	}
	u, ok := c.units[name]
	return u, ok
}

// Document is the YAML shape of a pipeline file.
type Document struct {
	Pipelines map[string][]Item `yaml:"pipelines"`
}

// Item is one step of a declared pipeline: either a unit with args or the
// name of another pipeline to splice in.
type Item struct {
	Use     string `yaml:"use,omitempty"`
	Include string `yaml:"include,omitempty"`
	Args    []any  `yaml:"args,omitempty"`
}

// Set is a parsed pipeline file bound to a catalog.
type Set[E any] struct {
	doc     Document
	catalog *Catalog[E]
}

// Load parses a pipeline file holding a single YAML document. Unknown fields
// and additional documents are rejected. With a nil catalog every use item
// resolves to ErrUnknownUnit.
func Load[E any](r io.Reader, catalog *Catalog[E]) (*Set[E], error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&doc)
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, fmt.Errorf("decode pipelines: %w", err)
	default:
		var extra yaml.Node
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if err != nil {
				return nil, fmt.Errorf("decode pipelines: %w", err)
			}
			return nil, ErrExtraDocument
		}
	}

	for name, items := range doc.Pipelines {
		for i, it := range items {
			if (it.Use == "") == (it.Include == "") {
				return nil, fmt.Errorf("pipeline %q item %d: %w", name, i, ErrInvalidItem)
			}
		}
	}
	return &Set[E]{doc: doc, catalog: catalog}, nil
}

// LoadBytes is Load over an in-memory document.
func LoadBytes[E any](data []byte, catalog *Catalog[E]) (*Set[E], error) {
	return Load(bytes.NewReader(data), catalog)
}

// LoadFile is Load over the file at path.
func LoadFile[E any](path string, catalog *Catalog[E]) (*Set[E], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, catalog)
}

// Names lists the declared pipelines in sorted order.
func (s *Set[E]) Names() []string {
	names := make([]string, 0, len(s.doc.Pipelines))
	for name := range s.doc.Pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builder resolves the named pipeline. Includes are built first and spliced
// into the result at their position.
func (s *Set[E]) Builder(name string) (*action.Builder[E], error) {
	return s.build(name, nil)
}

func (s *Set[E]) build(name string, path []string) (*action.Builder[E], error) {
	for _, p := range path {
		if p == name {
			return nil, fmt.Errorf("%s -> %s: %w", strings.Join(path, " -> "), name, ErrIncludeCycle)
		}
	}
	items, ok := s.doc.Pipelines[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownPipeline)
	}
	path = append(path, name)

	b := action.New[E]()
	for _, it := range items {
		if it.Include != "" {
			nested, err := s.build(it.Include, path)
			if err != nil {
				return nil, err
			}
			b.Use(nested)
			continue
		}
		u, ok := s.catalog.Lookup(it.Use)
		if !ok {
			return nil, fmt.Errorf("pipeline %q: %q: %w", name, it.Use, ErrUnknownUnit)
		}
		b.Use(u, it.Args...)
	}
	return b, nil
}
