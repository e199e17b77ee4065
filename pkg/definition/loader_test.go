package definition_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/definition"
	"github.com/goliatone/go-formwizard/pkg/model"
)

func TestLoadFS_ParsesJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"signup.json": {Data: []byte(`{"wizards":{"signup":{"title":"Sign up","steps":[{"index":2,"name":"second","fields":[{"name":"b"}]},{"index":1,"name":" first ","fields":[{"name":" a ","required":true}]}]}}}`)},
		"nested/survey.yml": {Data: []byte(`
wizards:
  survey:
    steps:
      - index: 1
        name: only
        fields:
          - name: score
            type: integer
`)},
		"openapi.yaml": {Data: []byte("openapi: 3.0.3\ninfo:\n  title: x\n  version: '1'\npaths: {}\n")},
		"README.md":    {Data: []byte("ignored")},
	}

	store, err := definition.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"signup", "survey"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	signup, ok := store.Wizard("signup")
	if !ok {
		t.Fatalf("expected signup wizard")
	}
	if signup.ID != "signup" {
		t.Fatalf("expected id to be filled from the map key, got %q", signup.ID)
	}
	if signup.Steps[0].Index != 1 || signup.Steps[0].Name != "first" {
		t.Fatalf("expected steps sorted and trimmed, got %+v", signup.Steps[0])
	}
	if signup.Steps[0].Fields[0].Name != "a" {
		t.Fatalf("expected trimmed field name, got %q", signup.Steps[0].Fields[0].Name)
	}
	if signup.Steps[1].Fields[0].Type != model.FieldTypeString {
		t.Fatalf("expected default field type string, got %q", signup.Steps[1].Fields[0].Type)
	}

	survey, _ := store.Wizard("survey")
	if survey.Steps[0].Fields[0].Type != model.FieldTypeInteger {
		t.Fatalf("expected integer field, got %q", survey.Steps[0].Fields[0].Type)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file": {"a.yaml": {Data: []byte("  \n")}},
		"invalid":    {"a.json": {Data: []byte("{wizards: [")}},
		"no steps":   {"a.yaml": {Data: []byte("wizards:\n  w:\n    title: x\n")}},
		"bad index":  {"a.yaml": {Data: []byte("wizards:\n  w:\n    steps:\n      - index: 0\n        name: x\n")}},
		"dup index":  {"a.yaml": {Data: []byte("wizards:\n  w:\n    steps:\n      - index: 1\n      - index: 1\n")}},
		"dup wizard": {
			"a.yaml": {Data: []byte("wizards:\n  w:\n    steps:\n      - index: 1\n")},
			"b.yaml": {Data: []byte("wizards:\n  w:\n    steps:\n      - index: 1\n")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := definition.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_NilFilesystem(t *testing.T) {
	store, err := definition.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	if _, err := store.Build("missing", definition.BuildOptions{}); !errors.Is(err, definition.ErrUnknownWizard) {
		t.Fatalf("expected ErrUnknownWizard, got %v", err)
	}
}
