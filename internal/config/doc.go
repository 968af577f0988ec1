// Package config provides configuration loading, merging, and validation
// facilities for the server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Defaults are applied to the merged result and the final value is validated
// before it is returned by [GetStructuredConfig]. The result is meant to be
// built once and passed by value or pointer to constructors; nothing in the
// application mutates it after startup.
package config
