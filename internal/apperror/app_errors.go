package apperror

import "errors"

var (
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrUnknownAction    = errors.New("unknown action")
	ErrThemeNotSaved    = errors.New("theme preference not saved")
	ErrStoreUnavailable = errors.New("preference store is unavailable")
)
