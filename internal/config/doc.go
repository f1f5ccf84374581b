// Package config loads Stargazer's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/stargazer/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// After the file is read, a non-empty NASA_API_KEY environment variable
// replaces api_key.
//
// # Default Values
//
//   - API key: DEMO_KEY (shared, heavily rate limited)
//   - API URL: https://api.nasa.gov/planetary/apod
//   - Speech engine: auto (first of espeak-ng, espeak, say, spd-say on PATH)
//   - Theme: Nightfox
//   - Log directory: ~/.local/share/stargazer/logs
//
// # TOML Format
//
//	api_key = "your-key"
//	api_url = "https://api.nasa.gov/planetary/apod"
//	speech_engine = "espeak-ng"   # auto, espeak-ng, espeak, say, spd-say, none
//	theme = "Kanagawa"
//	log_dir = "~/.local/share/stargazer/logs"
//
// Every field is optional. Tilde expansion is applied to log_dir.
//
// Display timings are not configurable. They live in the cycle package.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error.
package config
