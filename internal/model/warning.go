package model

// WarningLevel classifies an integrity warning.
type WarningLevel string

const (
	WarningError = WarningLevel("error")
	WarningInfo  = WarningLevel("info")
)

// Warning is one integrity finding for an extraction. Warnings are produced
// fresh on every analysis pass and never persisted.
type Warning struct {
	Level   WarningLevel `json:"level"`
	Message string       `json:"message"`
}
