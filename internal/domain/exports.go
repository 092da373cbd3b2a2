package domain

import (
	interfaces "securelocal/internal/domain/interfaces"
	types "securelocal/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Document      = types.Document
	Section       = types.Section
	ChangeHandler = types.ChangeHandler
)

// Interface aliases expose contracts from the interfaces subpackage.
type (
	Root       = interfaces.Root
	Directory  = interfaces.Directory
	File       = interfaces.File
	Writable   = interfaces.Writable
	LocalStore = interfaces.LocalStore
)

const (
	DefaultSection = types.DefaultSection
	BaseDirectory  = types.BaseDirectory
)
