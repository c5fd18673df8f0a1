package model

import "time"

// Address is embedded into Customer and shares its lifecycle - it is
// created, updated and deleted together with the owning customer.
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zipCode" bson:"zipCode"`
}

// Customer is customer model entity. The mongo ObjectID is deliberately
// not part of the model - customerId is the application-level identifier.
type Customer struct {
	CustomerID int64     `json:"customerId" bson:"customerId"`
	FirstName  string    `json:"firstName" bson:"firstName"`
	LastName   string    `json:"lastName" bson:"lastName"`
	Email      string    `json:"email" bson:"email"`
	Phone      string    `json:"phone" bson:"phone"`
	Address    Address   `json:"address" bson:"address"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CustomerPatch carries a partial update - only non-nil fields are applied.
type CustomerPatch struct {
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Email     *string  `json:"email"`
	Phone     *string  `json:"phone"`
	Address   *Address `json:"address"`
}
