// Package configs provides embedded configuration templates for addrbook.
//
// Templates are embedded at build time with //go:embed so every binary
// carries them. They are written by:
//   - `addrbook config init` → user config at ~/.config/addrbook/config.yaml
//   - `addrbook config init --project` → .addrbook.yaml in the current directory
//
// Configuration hierarchy (see internal/config Load):
//  1. Hardcoded defaults (internal/config NewConfig)
//  2. User config (~/.config/addrbook/config.yaml)
//  3. Project config (.addrbook.yaml)
//  4. Environment variables (ADDRBOOK_*)
package configs

import _ "embed"

// UserConfigTemplate is the template for the per-user configuration.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is the template for a per-directory configuration,
// typically pointing at a book kept next to it.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
