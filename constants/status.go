package constants

// ItemStatus is the canonical per-document outcome recorded in a batch summary.
type ItemStatus string

const (
	ItemStatusSuccess ItemStatus = "success"
	ItemStatusError   ItemStatus = "error"
)
