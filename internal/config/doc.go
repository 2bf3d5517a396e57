// Package config loads the settings file that fixes the slot layout and
// where saves and the config store live.
//
// Settings are read from TOML:
//
//	max_savefiles  = 20
//	num_save_slots = 5
//	autosave_text  = "Autosave"
//	lang           = "en"
//
// Missing keys take their defaults; out-of-range values are rejected with
// an error naming the key.
package config
