package config

import "time"

// Colors
const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31
)

// Class colors used on class and profile embeds
const (
	WarriorColor = 0xC0392B
	ArcherColor  = 0x27AE60
	MageColor    = 0x8E44AD
)

const (
	DefaultQueryTimeout = 10 * time.Second
	AutocompleteLimit   = 25
)
