// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"time"
)

type Customer struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`

	// Phone is optional. When set it must start with "+", contain "-",
	// or consist of digits only.
	Phone sql.NullString `json:"phone,omitempty" db:"phone"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
