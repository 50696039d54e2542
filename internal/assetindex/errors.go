package assetindex

import "errors"

// Sentinel errors for asset decoding.
var (
	ErrEmptyAsset   = errors.New("asset has no content")
	ErrNotImage     = errors.New("asset is not a supported image")
	ErrInvalidName  = errors.New("invalid asset name")
	ErrDecodeFailed = errors.New("asset decoding failed")
)
