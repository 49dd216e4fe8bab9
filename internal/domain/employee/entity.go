package employee

import "time"

// Employee is the minimal read model this engine needs: identity for
// ledgers and reports, active flag for scheduled jobs. Employee
// administration lives in the upstream HR system.
type Employee struct {
	ID        string
	FullName  string
	Active    bool
	CreatedAt time.Time
}
