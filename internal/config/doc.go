// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]. The resolved [Environment]
// drives every fail-open/fail-closed decision in the application, so
// validation enforces that production deployments name their backends
// explicitly.
package config
