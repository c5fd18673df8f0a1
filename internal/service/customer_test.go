package service

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	cacheMocks "github.com/umalmyha/custdb/internal/cache/mocks"
	apperrors "github.com/umalmyha/custdb/internal/errors"
	"github.com/umalmyha/custdb/internal/model"
	rpsMocks "github.com/umalmyha/custdb/internal/repository/mocks"
)

type customerServiceTestSuite struct {
	suite.Suite
	customerSvc     CustomerService
	customerRpsMock *rpsMocks.CustomerRepository
	sequenceRpsMock *rpsMocks.SequenceRepository
	cacheMock       *cacheMocks.CustomerCacheRepository
	ctx             context.Context
}

func (s *customerServiceTestSuite) SetupTest() {
	t := s.T()
	s.ctx = context.Background()
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.sequenceRpsMock = rpsMocks.NewSequenceRepository(t)
	s.cacheMock = cacheMocks.NewCustomerCacheRepository(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.customerSvc = NewCustomerService(s.customerRpsMock, s.sequenceRpsMock, s.cacheMock, logger)
}

func (s *customerServiceTestSuite) newCustomer() model.Customer {
	return model.Customer{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "JOHN@EX.com",
		Phone:     "1234567890",
		Address: model.Address{
			Street:  "1 Main",
			City:    "NYC",
			State:   "NY",
			ZipCode: "10001",
		},
	}
}

func (s *customerServiceTestSuite) storedCustomer(id int64) *model.Customer {
	c := s.newCustomer()
	c.CustomerID = id
	c.Email = "john@ex.com"
	return &c
}

func (s *customerServiceTestSuite) TestCreateSuccessfully() {
	ctx := s.ctx

	s.sequenceRpsMock.On("Next", ctx).Return(int64(4), nil).Once()
	s.customerRpsMock.On("FindByEmail", ctx, "john@ex.com").Return(nil, nil).Once()
	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(nil).Once()

	s.T().Log("customer must be created with next sequential id and normalized email")
	{
		c, err := s.customerSvc.Create(ctx, s.newCustomer())
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(int64(4), c.CustomerID, "allocated id must be assigned")
		s.Assert().Equal("john@ex.com", c.Email, "email must be stored lowercased")
		s.Assert().False(c.CreatedAt.IsZero(), "createdAt must be stamped")
		s.Assert().Equal(c.CreatedAt, c.UpdatedAt, "both timestamps must be stamped at creation")
	}
}

func (s *customerServiceTestSuite) TestCreateValidationFailed() {
	s.T().Log("invalid payload must be rejected before any storage call")
	{
		_, err := s.customerSvc.Create(s.ctx, model.Customer{FirstName: "J"})
		s.Assert().Error(err, "validation error must be raised")

		var validationErr *apperrors.ValidationErr
		s.Assert().ErrorAs(err, &validationErr, "error must be validation error")
		s.Assert().Len(validationErr.Violations(), 5, "all violations must be reported at once")
		s.sequenceRpsMock.AssertNotCalled(s.T(), "Next", s.ctx)
	}
}

func (s *customerServiceTestSuite) TestCreateDuplicateEmail() {
	ctx := s.ctx

	s.sequenceRpsMock.On("Next", ctx).Return(int64(5), nil).Once()
	s.customerRpsMock.On("FindByEmail", ctx, "john@ex.com").Return(s.storedCustomer(1), nil).Once()

	s.T().Log("email collision must be reported as duplicate entry")
	{
		_, err := s.customerSvc.Create(ctx, s.newCustomer())

		var duplicateErr *apperrors.DuplicateEntryErr
		s.Assert().ErrorAs(err, &duplicateErr, "error must be duplicate entry error")
		s.customerRpsMock.AssertNotCalled(s.T(), "Create", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *customerServiceTestSuite) TestFindByIDFromCache() {
	ctx := s.ctx
	customer := s.storedCustomer(3)

	s.cacheMock.On("FindByID", ctx, int64(3)).Return(customer, nil).Once()

	s.T().Log("customer must be served from cache")
	{
		c, err := s.customerSvc.FindByID(ctx, "3")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customer, c)
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByID", ctx, int64(3))
	}
}

func (s *customerServiceTestSuite) TestFindByIDCached() {
	ctx := s.ctx
	customer := s.storedCustomer(3)

	s.cacheMock.On("FindByID", ctx, int64(3)).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, int64(3)).Return(customer, nil).Once()
	s.cacheMock.On("Create", ctx, customer).Return(nil).Once()

	s.T().Log("customer missing in cache must be read from storage and cached")
	{
		c, err := s.customerSvc.FindByID(ctx, "3")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customer, c)
	}
}

func (s *customerServiceTestSuite) TestFindByIDNotFound() {
	ctx := s.ctx

	s.cacheMock.On("FindByID", ctx, int64(77)).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, int64(77)).Return(nil, nil).Once()

	s.T().Log("missing customer must be reported as not found")
	{
		_, err := s.customerSvc.FindByID(ctx, "77")

		var notFoundErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "error must be not found error")
	}
}

func (s *customerServiceTestSuite) TestFindByIDInvalid() {
	s.T().Log("malformed and non-positive ids must be rejected without storage calls")
	{
		for _, id := range []string{"abc", "-1", "0", "1.5", ""} {
			_, err := s.customerSvc.FindByID(s.ctx, id)

			var invalidIDErr *apperrors.InvalidIDErr
			s.Assert().ErrorAs(err, &invalidIDErr, "id %q must be rejected", id)
		}
	}
}

func (s *customerServiceTestSuite) TestUpdateEmptyPatch() {
	ctx := s.ctx
	customer := s.storedCustomer(3)

	s.customerRpsMock.On("Update", ctx, int64(3), mock.AnythingOfType("*model.CustomerPatch"), mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	s.cacheMock.On("DeleteByID", ctx, int64(3)).Return(nil).Once()
	s.customerRpsMock.On("FindByID", ctx, int64(3)).Return(customer, nil).Once()

	s.T().Log("empty patch must touch only updatedAt and skip the email check")
	{
		c, err := s.customerSvc.Update(ctx, "3", model.CustomerPatch{})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customer, c)
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByEmailExcluding", ctx, mock.Anything, mock.Anything)
	}
}

func (s *customerServiceTestSuite) TestUpdateDuplicateEmail() {
	ctx := s.ctx
	email := "taken@ex.com"

	s.customerRpsMock.On("FindByEmailExcluding", ctx, email, int64(3)).Return(s.storedCustomer(1), nil).Once()

	s.T().Log("email collision with another customer must be reported as duplicate entry")
	{
		_, err := s.customerSvc.Update(ctx, "3", model.CustomerPatch{Email: &email})

		var duplicateErr *apperrors.DuplicateEntryErr
		s.Assert().ErrorAs(err, &duplicateErr, "error must be duplicate entry error")
	}
}

func (s *customerServiceTestSuite) TestUpdateNotFound() {
	ctx := s.ctx

	s.customerRpsMock.On("Update", ctx, int64(42), mock.AnythingOfType("*model.CustomerPatch"), mock.AnythingOfType("time.Time")).Return(false, nil).Once()

	s.T().Log("update of missing customer must be reported as not found")
	{
		_, err := s.customerSvc.Update(ctx, "42", model.CustomerPatch{})

		var notFoundErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "error must be not found error")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDSuccessfully() {
	ctx := s.ctx
	customer := s.storedCustomer(3)

	s.customerRpsMock.On("FindByID", ctx, int64(3)).Return(customer, nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, int64(3)).Return(true, nil).Once()
	s.cacheMock.On("DeleteByID", ctx, int64(3)).Return(nil).Once()

	s.T().Log("delete must return the last known state of the removed customer")
	{
		c, err := s.customerSvc.DeleteByID(ctx, "3")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customer, c)
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDNotFound() {
	ctx := s.ctx

	s.customerRpsMock.On("FindByID", ctx, int64(42)).Return(nil, nil).Once()

	s.T().Log("delete of missing customer must be reported as not found")
	{
		_, err := s.customerSvc.DeleteByID(ctx, "42")

		var notFoundErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "error must be not found error")
		s.customerRpsMock.AssertNotCalled(s.T(), "DeleteByID", ctx, int64(42))
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDInvalid() {
	s.T().Log("malformed id must be rejected")
	{
		_, err := s.customerSvc.DeleteByID(s.ctx, "abc")

		var invalidIDErr *apperrors.InvalidIDErr
		s.Assert().ErrorAs(err, &invalidIDErr, "error must be invalid id error")
	}
}

func (s *customerServiceTestSuite) TestSearchByID() {
	ctx := s.ctx
	customers := []*model.Customer{s.storedCustomer(3)}

	s.customerRpsMock.On("FindByField", ctx, "customerId", int64(3)).Return(customers, nil).Once()

	s.T().Log("id search must be mapped to the customerId attribute")
	{
		found, err := s.customerSvc.Search(ctx, "id", "3")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customers, found)
	}
}

func (s *customerServiceTestSuite) TestSearchByIDNonNumeric() {
	s.T().Log("non-numeric id must yield an empty result, not an error")
	{
		found, err := s.customerSvc.Search(s.ctx, "id", "abc")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Empty(found, "result must be empty")
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByField", s.ctx, mock.Anything, mock.Anything)
	}
}

func (s *customerServiceTestSuite) TestSearchByPassword() {
	s.T().Log("password search must always yield an empty result")
	{
		found, err := s.customerSvc.Search(s.ctx, "password", "secret")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Empty(found, "result must be empty")
	}
}

func (s *customerServiceTestSuite) TestSearchByEmail() {
	ctx := s.ctx
	customers := []*model.Customer{s.storedCustomer(3)}

	s.customerRpsMock.On("FindByField", ctx, "email", "john@ex.com").Return(customers, nil).Once()

	s.T().Log("email search must be an exact case-sensitive match")
	{
		found, err := s.customerSvc.Search(ctx, "email", "john@ex.com")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customers, found)
	}
}

func (s *customerServiceTestSuite) TestSearchPassthroughField() {
	ctx := s.ctx

	s.customerRpsMock.On("FindByField", ctx, "firstName", "John").Return([]*model.Customer{}, nil).Once()

	s.T().Log("unknown fields must be matched as-is")
	{
		found, err := s.customerSvc.Search(ctx, "firstName", "John")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Empty(found)
	}
}

func (s *customerServiceTestSuite) TestResetToDefaults() {
	ctx := s.ctx

	s.customerRpsMock.On("DeleteAll", ctx).Return(nil).Once()
	s.sequenceRpsMock.On("ResetTo", ctx, int64(3)).Return(nil).Once()
	s.customerRpsMock.On("CreateAll", ctx, mock.MatchedBy(func(customers []*model.Customer) bool {
		if len(customers) != 3 {
			return false
		}
		for i, c := range customers {
			if c.CustomerID != int64(i+1) || c.CreatedAt.IsZero() {
				return false
			}
		}
		return true
	})).Return(int64(3), nil).Once()
	s.customerRpsMock.On("Count", ctx).Return(int64(3), nil).Once()
	s.cacheMock.On("DeleteAll", ctx).Return(nil).Once()

	s.T().Log("reset must reseed the fixed dataset with ids 1-3 and seq 3")
	{
		message, err := s.customerSvc.ResetToDefaults(ctx)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal("3 records are now in the collection", message)
	}
}

func (s *customerServiceTestSuite) TestSeed() {
	ctx := s.ctx

	seeded := []*model.Customer{
		{FirstName: "Dana", LastName: "Miles", Email: "dana.miles@example.com", Phone: "1112223334"},
	}

	s.customerRpsMock.On("DeleteAll", ctx).Return(nil).Once()
	s.sequenceRpsMock.On("ResetTo", ctx, int64(1)).Return(nil).Once()
	s.cacheMock.On("DeleteAll", ctx).Return(nil).Once()
	s.customerRpsMock.On("CreateAll", ctx, mock.MatchedBy(func(customers []*model.Customer) bool {
		return len(customers) == 1 && customers[0].CustomerID == 1 && !customers[0].CreatedAt.IsZero()
	})).Return(int64(1), nil).Once()

	s.T().Log("seed must replace all records and restart ids from 1")
	{
		count, err := s.customerSvc.Seed(ctx, seeded)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(int64(1), count)
	}
}

func (s *customerServiceTestSuite) TestSeedEmpty() {
	ctx := s.ctx

	s.customerRpsMock.On("DeleteAll", ctx).Return(nil).Once()
	s.sequenceRpsMock.On("ResetTo", ctx, int64(0)).Return(nil).Once()
	s.cacheMock.On("DeleteAll", ctx).Return(nil).Once()

	s.T().Log("seed with no records must leave the collection empty and seq at 0")
	{
		count, err := s.customerSvc.Seed(ctx, nil)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(int64(0), count)
		s.customerRpsMock.AssertNotCalled(s.T(), "CreateAll", ctx, mock.Anything)
	}
}

// start customer service test suite
func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(customerServiceTestSuite))
}
