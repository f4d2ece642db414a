//go:build embed_openapi

package api

import "shipquote/openapi"

func openAPILoad() ([]byte, error) { return openapi.Spec, nil }
