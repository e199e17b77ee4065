// Package definition loads declarative wizard definitions from JSON or YAML
// files and builds them into step schemas. A definition file holds a
// `wizards` map keyed by wizard id; each wizard lists its steps and fields
// using the pkg/model types. The bundled CRM catalogue (organization and
// contact wizards plus the OpenAPI components they reference) is available
// through CatalogFS.
package definition
