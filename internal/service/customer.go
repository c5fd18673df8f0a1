package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/umalmyha/custdb/internal/cache"
	apperrors "github.com/umalmyha/custdb/internal/errors"
	"github.com/umalmyha/custdb/internal/model"
	"github.com/umalmyha/custdb/internal/repository"
	"github.com/umalmyha/custdb/internal/validation"
)

// CustomerService implements the business rules over the customers
// collection: identifier validation, sequential id allocation, email
// uniqueness, search field mapping and the bulk reset/seed flows.
type CustomerService interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, string) (*model.Customer, error)
	Create(context.Context, model.Customer) (*model.Customer, error)
	Update(context.Context, string, model.CustomerPatch) (*model.Customer, error)
	DeleteByID(context.Context, string) (*model.Customer, error)
	Search(context.Context, string, string) ([]*model.Customer, error)
	FindByCity(context.Context, string) ([]*model.Customer, error)
	ResetToDefaults(context.Context) (string, error)
	Seed(context.Context, []*model.Customer) (int64, error)
}

type customerService struct {
	customerRepo  repository.CustomerRepository
	sequenceRepo  repository.SequenceRepository
	customerCache cache.CustomerCacheRepository
	logger        logrus.FieldLogger
}

// NewCustomerService builds new CustomerService
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	sequenceRepo repository.SequenceRepository,
	customerCache cache.CustomerCacheRepository,
	logger logrus.FieldLogger,
) CustomerService {
	return &customerService{
		customerRepo:  customerRepo,
		sequenceRepo:  sequenceRepo,
		customerCache: customerCache,
		logger:        logger,
	}
}

func (s *customerService) FindAll(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

func (s *customerService) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	customerID, err := parseCustomerID(id)
	if err != nil {
		return nil, err
	}

	cached, err := s.customerCache.FindByID(ctx, customerID)
	if err != nil {
		s.logger.Warnf("failed to read customer %d from cache - %v", customerID, err)
	}
	if cached != nil {
		return cached, nil
	}

	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, apperrors.NewNotFoundErr(fmt.Sprintf("Customer with ID %s does not exist", id))
	}

	if err := s.customerCache.Create(ctx, c); err != nil {
		s.logger.Warnf("failed to cache customer %d - %v", customerID, err)
	}
	return c, nil
}

func (s *customerService) Create(ctx context.Context, c model.Customer) (*model.Customer, error) {
	c = validation.NormalizeCustomer(c)
	if violations := validation.ValidateCustomer(c); len(violations) > 0 {
		return nil, apperrors.NewValidationErr("Please check the provided data", violations)
	}

	// id is allocated before the duplicate check, so a rejected create
	// leaves a gap in the sequence - gaps are tolerated, duplicates are not
	customerID, err := s.sequenceRepo.Next(ctx)
	if err != nil {
		return nil, err
	}

	// advisory pre-check for the friendly message; the unique index on
	// email remains the authoritative guard under concurrent creates
	existing, err := s.customerRepo.FindByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateEntryErr("A customer with this email already exists")
	}

	now := time.Now().UTC()
	c.CustomerID = customerID
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.customerRepo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *customerService) Update(ctx context.Context, id string, patch model.CustomerPatch) (*model.Customer, error) {
	customerID, err := parseCustomerID(id)
	if err != nil {
		return nil, err
	}

	patch = validation.NormalizePatch(patch)

	if patch.Email != nil {
		existing, err := s.customerRepo.FindByEmailExcluding(ctx, *patch.Email, customerID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewDuplicateEntryErr("A customer with this email already exists")
		}
	}

	matched, err := s.customerRepo.Update(ctx, customerID, &patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperrors.NewNotFoundErr("Customer not found")
	}

	if err := s.customerCache.DeleteByID(ctx, customerID); err != nil {
		s.logger.Warnf("failed to evict customer %d from cache - %v", customerID, err)
	}

	updated, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewNotFoundErr("Customer not found")
	}
	return updated, nil
}

func (s *customerService) DeleteByID(ctx context.Context, id string) (*model.Customer, error) {
	customerID, err := parseCustomerID(id)
	if err != nil {
		return nil, err
	}

	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NewNotFoundErr("Customer not found")
	}

	deleted, err := s.customerRepo.DeleteByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperrors.NewNotFoundErr("Customer not found")
	}

	if err := s.customerCache.DeleteByID(ctx, customerID); err != nil {
		s.logger.Warnf("failed to evict customer %d from cache - %v", customerID, err)
	}

	// last-known state, so the caller can show what was removed
	return c, nil
}

func (s *customerService) Search(ctx context.Context, field string, value string) ([]*model.Customer, error) {
	switch field {
	case "id":
		customerID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			// non-numeric id is an empty result, not an error
			return make([]*model.Customer, 0), nil
		}
		return s.customerRepo.FindByField(ctx, "customerId", customerID)
	case "email":
		// exact, case-sensitive match against the stored lowercased email
		return s.customerRepo.FindByField(ctx, "email", value)
	case "password":
		// customers carry no password attribute
		return make([]*model.Customer, 0), nil
	default:
		return s.customerRepo.FindByField(ctx, field, value)
	}
}

func (s *customerService) FindByCity(ctx context.Context, city string) ([]*model.Customer, error) {
	return s.customerRepo.FindByCity(ctx, city)
}

func (s *customerService) ResetToDefaults(ctx context.Context) (string, error) {
	if err := s.customerRepo.DeleteAll(ctx); err != nil {
		return "", err
	}

	samples := model.SampleCustomers()
	if err := s.sequenceRepo.ResetTo(ctx, int64(len(samples))); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	for i, c := range samples {
		c.CustomerID = int64(i + 1)
		c.CreatedAt = now
		c.UpdatedAt = now
	}

	if _, err := s.customerRepo.CreateAll(ctx, samples); err != nil {
		return "", err
	}

	count, err := s.customerRepo.Count(ctx)
	if err != nil {
		return "", err
	}

	if err := s.customerCache.DeleteAll(ctx); err != nil {
		s.logger.Warnf("failed to flush customer cache - %v", err)
	}

	return fmt.Sprintf("%d records are now in the collection", count), nil
}

func (s *customerService) Seed(ctx context.Context, customers []*model.Customer) (int64, error) {
	if err := s.customerRepo.DeleteAll(ctx); err != nil {
		return 0, err
	}

	if err := s.sequenceRepo.ResetTo(ctx, int64(len(customers))); err != nil {
		return 0, err
	}

	if err := s.customerCache.DeleteAll(ctx); err != nil {
		s.logger.Warnf("failed to flush customer cache - %v", err)
	}

	if len(customers) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for i, c := range customers {
		c.CustomerID = int64(i + 1)
		c.CreatedAt = now
		c.UpdatedAt = now
	}

	return s.customerRepo.CreateAll(ctx, customers)
}

func parseCustomerID(id string) (int64, error) {
	customerID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || customerID <= 0 {
		return 0, apperrors.NewInvalidIDErr("Invalid customer ID format")
	}
	return customerID, nil
}
