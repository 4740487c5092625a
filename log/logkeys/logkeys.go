// Package logkeys defines some static logging keys for consistent structured logging output.
// Mostly exists as a mental aid when drafting log messages.
package logkeys

const (
	Message = "msg"
	Error   = "err"

	// an inventory item name.
	Item = "item"

	// a quantity being added or removed, or the resulting stock level.
	Quantity = "qty"

	// a storage location: a file path, a diskv base path, a DSN, etc.
	Path = "path"

	// name of a storage backend
	Storage = "storage"

	// a LowStock threshold
	Threshold = "threshold"

	// a context-dependent numerical count/length of something
	GenericCount = "count"
)
