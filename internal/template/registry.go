package template

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var builtin embed.FS

// Parse decodes a YAML template and rejects unknown fields.
func Parse(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var schema Schema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	if errs := ValidateSchema(&schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template %q: %w", schema.ID, errors.Join(errs...))
	}
	return &schema, nil
}

// Registry is an ordered, read-only set of templates.
type Registry struct {
	schemas []*Schema
}

// Builtin loads the templates embedded in the binary.
func Builtin() (*Registry, error) {
	return Load(builtin, "templates")
}

// Load reads every *.yaml file in dir, sorted by file name.
func Load(fsys fs.FS, dir string) (*Registry, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	sort.Strings(files)

	r := &Registry{}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		schema, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		r.schemas = append(r.schemas, schema)
	}
	return r, nil
}

// Templates returns the selectable templates, excluding the seed project.
func (r *Registry) Templates() []*Schema {
	var out []*Schema
	for _, s := range r.schemas {
		if !s.Seed {
			out = append(out, s)
		}
	}
	return out
}

// Seed returns the demo project created on first run, if any.
func (r *Registry) Seed() (*Schema, bool) {
	for _, s := range r.schemas {
		if s.Seed {
			return s, true
		}
	}
	return nil, false
}

// Resolve finds a template by ID, display name (case-insensitive), or its
// 1-based position in Templates().
func (r *Registry) Resolve(name string) (*Schema, error) {
	input := strings.TrimSpace(name)
	if input == "" {
		return nil, fmt.Errorf("template name is empty")
	}

	templates := r.Templates()
	for _, s := range templates {
		if strings.EqualFold(s.ID, input) || strings.EqualFold(s.Name, input) {
			return s, nil
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(templates) {
		return templates[n-1], nil
	}
	return nil, fmt.Errorf("template %q not found", name)
}
