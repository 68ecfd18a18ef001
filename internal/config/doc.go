// Package config provides centralized configuration management for the
// row-length analyzer. It handles loading configuration from multiple
// sources, validation, and path resolution for every file the application
// writes.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Configuration file (YAML, highest priority)
//	2. Environment variables
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ROWLENS_* for namespacing:
//
//	ROWLENS_SERVER_PORT=8080
//	ROWLENS_LOGGING_LEVEL=info
//	ROWLENS_ANALYSIS_PAGE_SIZE=3000
//	ROWLENS_ANALYSIS_WORKERS=8
package config
