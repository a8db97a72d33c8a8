// Package cli implements the validkit command line: check, lint, serve and
// version. Configuration comes from the VALIDKIT_* environment variables
// (see package config); flags override them.
package cli
