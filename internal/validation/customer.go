package validation

import (
	"regexp"
	"strings"

	"github.com/umalmyha/custdb/internal/model"
)

var (
	emailRegexp = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phoneRegexp = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

const minNameLength = 2

// NormalizeCustomer trims all string attributes and lower-cases email.
// Missing attributes stay as empty strings, so validation can report
// every problem for the raw payload at once.
func NormalizeCustomer(c model.Customer) model.Customer {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = normalizeAddress(c.Address)
	return c
}

// ValidateCustomer checks the normalized customer and returns all
// violation messages in check order. It never short-circuits - the
// caller is expected to show every problem at once.
func ValidateCustomer(c model.Customer) []string {
	var violations []string

	if len(c.FirstName) < minNameLength {
		violations = append(violations, "First name is required and must be at least 2 characters long")
	}
	if len(c.LastName) < minNameLength {
		violations = append(violations, "Last name is required and must be at least 2 characters long")
	}
	if !emailRegexp.MatchString(c.Email) {
		violations = append(violations, "Valid email is required")
	}
	if !phoneRegexp.MatchString(c.Phone) {
		violations = append(violations, "Valid phone number is required")
	}
	if !isCompleteAddress(c.Address) {
		violations = append(violations, "Complete address is required")
	}

	return violations
}

// NormalizePatch trims provided fields and drops the ones which become
// empty, so a blank value never wipes out stored data. A provided address
// replaces all four sub-fields at once.
func NormalizePatch(p model.CustomerPatch) model.CustomerPatch {
	p.FirstName = trimmedOrNil(p.FirstName)
	p.LastName = trimmedOrNil(p.LastName)
	p.Phone = trimmedOrNil(p.Phone)

	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if email == "" {
			p.Email = nil
		} else {
			p.Email = &email
		}
	}

	if p.Address != nil {
		addr := normalizeAddress(*p.Address)
		p.Address = &addr
	}

	return p
}

func normalizeAddress(a model.Address) model.Address {
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	return a
}

func isCompleteAddress(a model.Address) bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.ZipCode != ""
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
