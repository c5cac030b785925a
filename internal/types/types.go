package types

// UnixMilli is an epoch timestamp in milliseconds.
type UnixMilli int64
