package upload

import "errors"

// ErrUnexpectedStatus is wrapped by Upload when the endpoint answers with a
// status outside 2xx. The Result still carries the status and body excerpt.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")
