// internal/domain/customer/dto.go
package customer

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=20"`
}

type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers" binding:"required"`
}

// BulkCreateResult carries the complete account of a batch: the customers
// that were created and one message per record that was not.
type BulkCreateResult struct {
	Customers []Customer `json:"customers"`
	Errors    []string   `json:"errors"`
}
