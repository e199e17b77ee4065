package definition_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/definition"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/step"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
)

func TestCatalog_Builds(t *testing.T) {
	store, opts := testsupport.MustLoadCatalog(t)
	if diff := cmp.Diff([]string{"contact", "organization"}, store.IDs()); diff != "" {
		t.Fatalf("catalog ids mismatch (-want +got):\n%s", diff)
	}

	schemas, err := store.Build("organization", opts)
	if err != nil {
		t.Fatalf("build organization: %v", err)
	}
	var names []string
	for _, schema := range schemas {
		names = append(names, schema.Name())
	}
	if diff := cmp.Diff([]string{"basics", "address", "contact", "notes"}, names); diff != "" {
		t.Fatalf("step names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "type"}, schemas[0].Required()); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if len(schemas[1].Required()) != 0 {
		t.Fatalf("address step should have no required fields")
	}

	if _, err := store.Build("contact", opts); err != nil {
		t.Fatalf("build contact: %v", err)
	}
}

func TestCatalog_OrganizationScenario(t *testing.T) {
	wiz, opts := testsupport.MustCatalogWizard(t, "organization")
	ctrl := testsupport.MustController(t, wiz, opts)
	ctx := context.Background()

	must := func(field string, value any) {
		t.Helper()
		if err := ctrl.UpdateField(field, value); err != nil {
			t.Fatalf("update %s: %v", field, err)
		}
	}

	must("name", "   ")
	must("type", "reseller")
	res, err := ctrl.ValidateStep(ctx, 1)
	if err != nil {
		t.Fatalf("validate basics: %v", err)
	}
	if res.Valid {
		t.Fatalf("expected invalid basics")
	}
	if diff := cmp.Diff([]string{"name", "type"}, res.Fields()); diff != "" {
		t.Fatalf("failing fields mismatch (-want +got):\n%s", diff)
	}
	if got := res.Error("name"); got != "Name is required" {
		t.Fatalf("unexpected required message %q", got)
	}

	must("name", "Acme")
	must("type", "customer")
	must("website", "not-a-url")
	if res, _ = ctrl.ValidateStep(ctx, 1); !res.Valid {
		t.Fatalf("expected basics valid, got %+v", res.Errors)
	}
	if res, _ = ctrl.ValidateStep(ctx, 2); !res.Valid {
		t.Fatalf("expected empty address valid, got %+v", res.Errors)
	}
	res, _ = ctrl.ValidateStep(ctx, 3)
	if res.Valid || res.Error("website") == "" {
		t.Fatalf("expected website error, got %+v", res)
	}

	must("website", "")
	if res, _ = ctrl.ValidateStep(ctx, 3); !res.Valid {
		t.Fatalf("expected blank optional website valid, got %+v", res.Errors)
	}

	must("notes", "<script>alert(1)</script>")
	if res, _ = ctrl.ValidateStep(ctx, 4); res.Valid {
		t.Fatalf("expected markup in notes to be rejected")
	}
	must("notes", "Key account")
	if res, _ = ctrl.ValidateStep(ctx, 4); !res.Valid {
		t.Fatalf("expected notes valid, got %+v", res.Errors)
	}

	if !ctrl.IsSubmitReady() {
		t.Fatalf("expected organization wizard ready")
	}
}

func TestCatalog_ContactPersonUsesCollaborator(t *testing.T) {
	store, opts := testsupport.MustLoadCatalog(t)
	schemas, err := store.Build("contact", opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data := testsupport.MustFormData(t, map[string]any{"first_name": "Ada", "last_name": "Lovelace"})
	res, err := schemas[0].Validate(context.Background(), data)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !res.Valid {
		t.Fatalf("expected person valid, got %+v", res.Errors)
	}
}

func TestBuild_ConfigurationErrors(t *testing.T) {
	cases := map[string]model.Wizard{
		"no steps": {ID: "w"},
		"unknown schema": {ID: "w", Steps: []model.Step{
			{Index: 1, SchemaRef: "Missing", Fields: []model.Field{{Name: "a"}}},
		}},
		"bad pattern": {ID: "w", Steps: []model.Step{
			{Index: 1, Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{
				{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "("}},
			}}}},
		}},
		"unknown rule": {ID: "w", Steps: []model.Step{
			{Index: 1, Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{{Kind: "shout"}}}}},
		}},
		"duplicate field": {ID: "w", Steps: []model.Step{
			{Index: 1, Fields: []model.Field{{Name: "a"}, {Name: "a"}}},
		}},
	}
	for name, wiz := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := definition.Build(wiz, definition.BuildOptions{})
			if !step.IsConfigurationError(err) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}
