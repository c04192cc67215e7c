// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// RESPONSE MODE
// =============================================================================

// ResponseMode tunes how much deliberation a chat request asks for.
type ResponseMode string

const (
	ModeThink       ResponseMode = "think"
	ModeDeepThink   ResponseMode = "deepThink"
	ModeDeeperThink ResponseMode = "deeperThink"
)

// String returns the raw mode identifier.
func (m ResponseMode) String() string {
	return string(m)
}

// IsValid reports whether the mode is one of the supported settings.
func (m ResponseMode) IsValid() bool {
	switch m {
	case ModeThink, ModeDeepThink, ModeDeeperThink:
		return true
	}
	return false
}

// =============================================================================
// PREFERENCES
// =============================================================================

// ResponseLengthAdaptive asks the upstream service to size replies itself.
// It serializes as the string "auto" in request parameters; any other
// setting is a fixed token count.
const ResponseLengthAdaptive = 0

// Preferences are the response-shaping knobs carried into every chat
// request. They never affect routing or classification.
type Preferences struct {
	// Creativity is the sampling temperature, 0.0 to 1.0.
	Creativity float64 `json:"creativity"`

	// ResponseLength caps reply tokens. ResponseLengthAdaptive means the
	// upstream service decides.
	ResponseLength int `json:"response_length"`

	// WritingStyle is a free-form style hint, e.g. "balanced".
	WritingStyle string `json:"writing_style"`

	// Mode selects how much deliberation to request.
	Mode ResponseMode `json:"mode"`
}

// DefaultPreferences returns the settings a fresh session starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Creativity:     0.7,
		ResponseLength: ResponseLengthAdaptive,
		WritingStyle:   "balanced",
		Mode:           ModeThink,
	}
}
