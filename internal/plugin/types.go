// Package plugin provides discovery and execution of external command
// plugins for GestureSlide. A plugin is a directory with a plugin.json
// manifest and an executable that reads one JSON request from stdin and
// writes one JSON response to stdout.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request represents a request sent to a plugin for execution.
type Request struct {
	// Action is the plugin action to perform, e.g. "advance" or "retreat".
	Action string `json:"action"`

	// Trigger describes what caused the action, e.g. "swipe-right".
	Trigger string `json:"trigger"`

	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Supports reports whether the plugin's manifest declares the action.
func (p *Plugin) Supports(action string) bool {
	for _, a := range p.Manifest.Actions {
		if a == action {
			return true
		}
	}
	return false
}
