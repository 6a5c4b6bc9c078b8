// internal/domain/product/entity.go
package product

import "time"

type Product struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Price float64 `json:"price" db:"price"`

	// Stock is the only field mutated after creation (by restocking).
	Stock int `json:"stock" db:"stock"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
