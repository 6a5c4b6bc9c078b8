// internal/domain/product/dto.go
package product

type CreateProductRequest struct {
	Name string `json:"name" binding:"required,max=255"`

	// Price and Stock are validated by the service so out-of-range values
	// surface as domain errors rather than binding failures.
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type RestockResult struct {
	UpdatedProducts []Product `json:"updated_products"`
	Message         string    `json:"message"`
}
