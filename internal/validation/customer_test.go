package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umalmyha/custdb/internal/model"
)

func validCustomer() model.Customer {
	return model.Customer{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Phone:     "1234567890",
		Address: model.Address{
			Street:  "123 Main St",
			City:    "New York",
			State:   "NY",
			ZipCode: "10001",
		},
	}
}

func TestNormalizeCustomer(t *testing.T) {
	c := model.Customer{
		FirstName: "  John ",
		LastName:  " Doe",
		Email:     " JOHN@EX.com ",
		Phone:     " 1234567890 ",
		Address: model.Address{
			Street:  " 1 Main ",
			City:    " NYC ",
			State:   " NY",
			ZipCode: "10001 ",
		},
	}

	normalized := NormalizeCustomer(c)
	require.Equal(t, "John", normalized.FirstName)
	require.Equal(t, "Doe", normalized.LastName)
	require.Equal(t, "john@ex.com", normalized.Email, "email must be trimmed and lowercased")
	require.Equal(t, "1234567890", normalized.Phone)
	require.Equal(t, model.Address{Street: "1 Main", City: "NYC", State: "NY", ZipCode: "10001"}, normalized.Address)
}

func TestNormalizeCustomerMissingFields(t *testing.T) {
	normalized := NormalizeCustomer(model.Customer{})
	require.Empty(t, normalized.FirstName)
	require.Empty(t, normalized.Email)
	require.Empty(t, normalized.Address.Street)
}

func TestValidateCustomerValid(t *testing.T) {
	violations := ValidateCustomer(NormalizeCustomer(validCustomer()))
	require.Empty(t, violations, "valid customer must produce no violations")
}

func TestValidateCustomerCumulative(t *testing.T) {
	violations := ValidateCustomer(NormalizeCustomer(model.Customer{}))
	require.Equal(t, []string{
		"First name is required and must be at least 2 characters long",
		"Last name is required and must be at least 2 characters long",
		"Valid email is required",
		"Valid phone number is required",
		"Complete address is required",
	}, violations, "all checks must run and keep their order")
}

func TestValidateCustomerFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.Customer)
		violation string
	}{
		{
			name:      "single character first name",
			mutate:    func(c *model.Customer) { c.FirstName = "J" },
			violation: "First name is required and must be at least 2 characters long",
		},
		{
			name:      "blank last name",
			mutate:    func(c *model.Customer) { c.LastName = "   " },
			violation: "Last name is required and must be at least 2 characters long",
		},
		{
			name:      "email without domain",
			mutate:    func(c *model.Customer) { c.Email = "john.doe" },
			violation: "Valid email is required",
		},
		{
			name:      "email without tld",
			mutate:    func(c *model.Customer) { c.Email = "john@example" },
			violation: "Valid email is required",
		},
		{
			name:      "phone starting with zero",
			mutate:    func(c *model.Customer) { c.Phone = "0123456789" },
			violation: "Valid phone number is required",
		},
		{
			name:      "phone with letters",
			mutate:    func(c *model.Customer) { c.Phone = "12345abc" },
			violation: "Valid phone number is required",
		},
		{
			name:      "missing zip code",
			mutate:    func(c *model.Customer) { c.Address.ZipCode = "" },
			violation: "Complete address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(&c)

			violations := ValidateCustomer(NormalizeCustomer(c))
			require.Equal(t, []string{tt.violation}, violations)
		})
	}
}

func TestValidateCustomerPhoneWithPlus(t *testing.T) {
	c := validCustomer()
	c.Phone = "+491234567890"
	require.Empty(t, ValidateCustomer(NormalizeCustomer(c)))
}

func TestNormalizePatch(t *testing.T) {
	first := "  John "
	email := " NEW@EX.com "
	blank := "   "

	patch := NormalizePatch(model.CustomerPatch{
		FirstName: &first,
		Email:     &email,
		Phone:     &blank,
		Address:   &model.Address{Street: " 1 Main ", City: "NYC"},
	})

	require.NotNil(t, patch.FirstName)
	require.Equal(t, "John", *patch.FirstName)
	require.NotNil(t, patch.Email)
	require.Equal(t, "new@ex.com", *patch.Email)
	require.Nil(t, patch.Phone, "blank values must be dropped, not applied")
	require.Nil(t, patch.LastName)
	require.NotNil(t, patch.Address)
	require.Equal(t, model.Address{Street: "1 Main", City: "NYC"}, *patch.Address,
		"provided address replaces all sub-fields, missing ones become empty")
}

func TestNormalizePatchEmpty(t *testing.T) {
	patch := NormalizePatch(model.CustomerPatch{})
	require.Nil(t, patch.FirstName)
	require.Nil(t, patch.LastName)
	require.Nil(t, patch.Email)
	require.Nil(t, patch.Phone)
	require.Nil(t, patch.Address)
}
