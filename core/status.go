package core

// Row lifecycle status. Rows are created done; removal first marks the
// row removed and only then deletes it physically, so a reader never
// depends on the delete having landed.
const (
	// StatusDone active row
	StatusDone = "done"
	// StatusRemoved tombstone, removal in progress
	StatusRemoved = "removed"
	// StatusPending reserved in the table schema, never written
	StatusPending = "pending"
)
