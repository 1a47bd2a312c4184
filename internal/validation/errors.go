package validation

import "errors"

// ErrBusy is returned when a validation pass is requested while another one runs.
var ErrBusy = errors.New("a validation pass is already running")
