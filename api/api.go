package api

import _ "embed"

// OpenAPISpec is the OpenAPI 3 description of the HTTP API.
//
//go:embed openapi.yml
var OpenAPISpec []byte
