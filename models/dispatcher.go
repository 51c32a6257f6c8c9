package models

// Dispatcher represents a back-office principal who owns jobs and raises
// invoices. It maps to the `dispatchers` table in SQLite. Role is "admin"
// for administrators and defaults to "dispatcher" otherwise.
type Dispatcher struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Role     string `db:"role" json:"role"`
}
