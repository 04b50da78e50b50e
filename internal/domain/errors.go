package domain

import "errors"

var (
	ErrModNotFound         = errors.New("mod not found")
	ErrNoInstallation      = errors.New("game installation not configured")
	ErrImportSourceMissing = errors.New("import source does not exist")
	ErrInvalidPath         = errors.New("invalid path")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrLinkFailed          = errors.New("link operation failed")
	ErrBusy                = errors.New("another operation is in progress")
)
