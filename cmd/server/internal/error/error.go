package error

import "errors"

// ErrTypeAssertMismatch signals a handler found the wrong type under an
// echo context key, which means the middleware chain is miswired.
var ErrTypeAssertMismatch = errors.New("failed to type assert context value")
