// Package openapi exposes the public contracts for the loader and parser
// stages that turn OpenAPI request bodies into required-field lists.
// Implementations live under internal/openapi to keep kin-openapi hidden from
// consumers; construct them through the top-level formguard package.
package openapi
