// Package generated holds the gin server interface and models generated from
// internal/api/openapi/openapi.yaml. Do not edit server.gen.go by hand; change
// the contract and run go generate.
//
// Import Path: incidentlens.io/lens/internal/api/generated
package generated

//go:generate go tool oapi-codegen -config oapi-codegen.yaml ../openapi/openapi.yaml
