// Package openapi embeds the API specification for builds tagged with
// embed_openapi; dev builds read the YAML from disk instead.
package openapi

import _ "embed"

//go:embed openapi.yaml
var Spec []byte
