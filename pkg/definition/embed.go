package definition

import (
	"embed"
	"io/fs"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

// CatalogOpenAPI is the path of the OpenAPI document inside CatalogFS that
// provides the components referenced by the bundled wizards.
const CatalogOpenAPI = "crm.openapi.yaml"

// CatalogFS exposes the bundled CRM wizard definitions and their OpenAPI
// components.
func CatalogFS() fs.FS {
	sub, err := fs.Sub(catalogFS, "catalog")
	if err != nil {
		return catalogFS
	}
	return sub
}
