package export

import "errors"

// Sentinel errors for export operations.
var (
	ErrExportInProgress   = errors.New("export already in progress")
	ErrSurfaceUnavailable = errors.New("rendering surface unavailable")
	ErrContentLoad        = errors.New("failed to load document into surface")
	ErrImageTimeout       = errors.New("timed out waiting for images")
	ErrPrint              = errors.New("print failed")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
)
