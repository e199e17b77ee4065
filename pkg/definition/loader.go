package definition

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Store holds the wizard definitions discovered by LoadFS.
type Store struct {
	wizards map[string]model.Wizard
}

// LoadFS walks the provided filesystem and parses JSON/YAML definition files.
// Files without a `wizards` key are skipped so definitions can share a
// directory with other assets such as OpenAPI documents. When fsys is nil the
// returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{wizards: make(map[string]model.Wizard)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawID, raw := range doc.Wizards {
			id := strings.TrimSpace(rawID)
			if id == "" {
				return fmt.Errorf("definition: file %s defines an empty wizard id", path)
			}
			if _, exists := store.wizards[id]; exists {
				return fmt.Errorf("definition: duplicate wizard %q (file %s)", id, path)
			}
			wizard, err := normaliseWizard(raw, id, path)
			if err != nil {
				return err
			}
			store.wizards[id] = wizard
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Wizard returns the definition for id.
func (s *Store) Wizard(id string) (model.Wizard, bool) {
	if s == nil {
		return model.Wizard{}, false
	}
	wizard, ok := s.wizards[id]
	return wizard, ok
}

// IDs lists the known wizard ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.wizards))
	for id := range s.wizards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any wizard.
func (s *Store) Empty() bool {
	return s == nil || len(s.wizards) == 0
}

type documentFile struct {
	Wizards map[string]model.Wizard `json:"wizards" yaml:"wizards"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("definition: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML", source)
}

func normaliseWizard(raw model.Wizard, id, source string) (model.Wizard, error) {
	wizard := raw
	wizard.ID = id
	if len(raw.Steps) == 0 {
		return model.Wizard{}, fmt.Errorf("definition: wizard %q (file %s) has no steps", id, source)
	}

	wizard.Steps = make([]model.Step, 0, len(raw.Steps))
	seen := make(map[int]struct{}, len(raw.Steps))
	for _, st := range raw.Steps {
		if st.Index < 1 {
			return model.Wizard{}, fmt.Errorf("definition: wizard %q (file %s) step %q has index %d, want 1 or greater", id, source, st.Name, st.Index)
		}
		if _, exists := seen[st.Index]; exists {
			return model.Wizard{}, fmt.Errorf("definition: wizard %q (file %s) defines step %d twice", id, source, st.Index)
		}
		seen[st.Index] = struct{}{}

		st.Name = strings.TrimSpace(st.Name)
		st.SchemaRef = strings.TrimSpace(st.SchemaRef)
		fields := make([]model.Field, len(st.Fields))
		for idx, field := range st.Fields {
			field.Name = strings.TrimSpace(field.Name)
			if field.Type == "" {
				field.Type = model.FieldTypeString
			}
			fields[idx] = field
		}
		st.Fields = fields
		wizard.Steps = append(wizard.Steps, st)
	}

	sort.Slice(wizard.Steps, func(i, j int) bool {
		return wizard.Steps[i].Index < wizard.Steps[j].Index
	})
	return wizard, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
