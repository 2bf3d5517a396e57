// Package logging provides logging utilities for autosave-slots.
//
// Debug logs are structured (slog) and controlled by Setup:
//
//	logging.Debug("loaded last save index", "slot", slot)
//	logging.Warn("invalid save index, not saving", "value", v)
//
// User-facing messages carry a status indicator:
//
//	logging.UserSuccess("Saved to %s", title)
//	logging.UserError("Save failed: %v", err)
//
// UserInfo and UserSuccess write to stdout, UserWarning and UserError to
// stderr.
package logging
