// Package testsupport holds helpers shared by package tests: catalogue
// loading, controller construction and golden files.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/definition"
	"github.com/goliatone/go-formwizard/pkg/formdata"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// MustLoadCatalog loads the bundled CRM catalogue together with build options
// that resolve its OpenAPI schema references.
func MustLoadCatalog(t *testing.T) (*definition.Store, definition.BuildOptions) {
	t.Helper()

	store, err := definition.LoadFS(definition.CatalogFS())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	components, err := openapi.LoadComponentsFS(context.Background(), definition.CatalogFS(), definition.CatalogOpenAPI)
	if err != nil {
		t.Fatalf("load catalog components: %v", err)
	}
	return store, definition.BuildOptions{Collaborators: components.Validators()}
}

// MustCatalogWizard returns the catalogue wizard id with its build options.
func MustCatalogWizard(t *testing.T, id string) (model.Wizard, definition.BuildOptions) {
	t.Helper()

	store, opts := MustLoadCatalog(t)
	wiz, ok := store.Wizard(id)
	if !ok {
		t.Fatalf("catalog wizard %q not found", id)
	}
	return wiz, opts
}

// MustController builds wiz and wraps the schemas in a controller.
func MustController(t *testing.T, wiz model.Wizard, opts definition.BuildOptions, ctrlOpts ...wizard.Option) *wizard.Controller {
	t.Helper()

	schemas, err := definition.Build(wiz, opts)
	if err != nil {
		t.Fatalf("build wizard %q: %v", wiz.ID, err)
	}
	ctrl, err := wizard.New(schemas, ctrlOpts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

// MustFormData builds a record or fails the test.
func MustFormData(t *testing.T, seed map[string]any) formdata.FormData {
	t.Helper()

	data, err := formdata.New(seed)
	if err != nil {
		t.Fatalf("formdata: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGoldenString reads a golden file and returns its content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}
