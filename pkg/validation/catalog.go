package validation

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Catalog is a Translator backed by per-locale message tables. Templates use
// {label} for the field label and {name} for each violation param, e.g.
// "{label} must be at least {value} characters".
type Catalog struct {
	locales map[string]map[string]string
}

var _ Translator = (*Catalog)(nil)

// DefaultCatalog returns the bundled English and Portuguese messages.
func DefaultCatalog() (*Catalog, error) {
	sub, err := fs.Sub(localesFS, "locales")
	if err != nil {
		return nil, err
	}
	return LoadCatalog(sub)
}

// LoadCatalog reads one YAML file per locale from fsys. The file name without
// extension is the locale (en.yaml, pt.yaml); each file is a flat key to
// template map.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{locales: make(map[string]map[string]string)}
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		ext := strings.ToLower(path.Ext(name))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("validation: read catalog %s: %w", name, err)
		}
		var table map[string]string
		if err := yaml.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("validation: parse catalog %s: %w", name, err)
		}
		locale := normalizeLocale(strings.TrimSuffix(path.Base(name), path.Ext(name)))
		if _, exists := c.locales[locale]; exists {
			return fmt.Errorf("validation: duplicate catalog locale %q (file %s)", locale, name)
		}
		c.locales[locale] = table
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Locales lists the loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for locale := range c.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate implements Translator. args follow Messages: the field label and
// then the violation params. A regional locale such as pt-BR falls back to
// its base language.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	table, ok := c.table(locale)
	if !ok {
		return "", fmt.Errorf("%w: locale %q", ErrMissingTranslation, locale)
	}
	tmpl, ok := table[key]
	if !ok || strings.TrimSpace(tmpl) == "" {
		return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
	}
	return expand(tmpl, args), nil
}

func (c *Catalog) table(locale string) (map[string]string, bool) {
	locale = normalizeLocale(locale)
	if table, ok := c.locales[locale]; ok {
		return table, true
	}
	if base, _, found := strings.Cut(locale, "-"); found {
		table, ok := c.locales[base]
		return table, ok
	}
	return nil, false
}

func expand(tmpl string, args []any) string {
	var pairs []string
	if len(args) > 0 {
		if label, ok := args[0].(string); ok {
			pairs = append(pairs, "{label}", label)
		}
	}
	if len(args) > 1 {
		if params, ok := args[1].(map[string]any); ok {
			for name, value := range params {
				pairs = append(pairs, "{"+name+"}", paramString(value))
			}
		}
	}
	if len(pairs) == 0 {
		return tmpl
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func paramString(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	case float64:
		return formatFloat(v)
	default:
		return fmt.Sprint(v)
	}
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}
