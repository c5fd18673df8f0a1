package model

// SampleCustomers is the fixed dataset inserted by the reset operation and
// used as the default payload for seeding.
func SampleCustomers() []*Customer {
	return []*Customer{
		{
			FirstName: "John",
			LastName:  "Doe",
			Email:     "john.doe@example.com",
			Phone:     "1234567890",
			Address: Address{
				Street:  "123 Main St",
				City:    "New York",
				State:   "NY",
				ZipCode: "10001",
			},
		},
		{
			FirstName: "Jane",
			LastName:  "Smith",
			Email:     "jane.smith@example.com",
			Phone:     "9876543210",
			Address: Address{
				Street:  "456 Oak Ave",
				City:    "Los Angeles",
				State:   "CA",
				ZipCode: "90210",
			},
		},
		{
			FirstName: "Michael",
			LastName:  "Johnson",
			Email:     "michael.johnson@example.com",
			Phone:     "5551234567",
			Address: Address{
				Street:  "789 Pine Rd",
				City:    "Chicago",
				State:   "IL",
				ZipCode: "60601",
			},
		},
	}
}
