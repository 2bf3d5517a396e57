// Package app wires the slot allocator to its collaborators: the settings
// file, the config store, the save repository and the running game.
package app
