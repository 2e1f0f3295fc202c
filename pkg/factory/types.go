package factory

import "fmt"

// Diner identifies the ordering user to the factory
type Diner struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderLine is one pizza in the fulfillment request
type OrderLine struct {
	MenuID      uint    `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// FulfillRequest is the payload sent to the factory order endpoint
type FulfillRequest struct {
	Diner Diner `json:"diner"`
	Order struct {
		ID          uint        `json:"id"`
		FranchiseID uint        `json:"franchiseId"`
		StoreID     uint        `json:"storeId"`
		Items       []OrderLine `json:"items"`
	} `json:"order"`
}

// FulfillResponse is the factory's answer for an accepted order. The JWT
// proves fulfillment; ReportURL lets the diner report a slow pizza.
type FulfillResponse struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

// ErrorResponse represents an error body from the factory API
type ErrorResponse struct {
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("factory error: %s", e.Message)
}
