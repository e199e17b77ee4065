// Package openapi adapts OpenAPI 3 component schemas into step schema
// collaborators. Documents are parsed and validated with kin-openapi;
// each named component becomes a Validator that checks a step record with
// Schema.VisitJSON in multi-error mode and reports one validation.Issue per
// failing location. kin-openapi types stay behind this package so wizard
// code only sees the step.SchemaValidator contract.
package openapi
