package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/core/services"
)

type AuthorizerServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	authorizer   portssvc.AuthorizerSvc
	ctx          context.Context
}

func (s *AuthorizerServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.authorizer = services.NewAuthorizerService(s.mockUserRepo)
	s.ctx = context.Background()
}

func (s *AuthorizerServiceTestSuite) TestResolveScope_UnknownPrincipal() {
	principalID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", mock.Anything, principalID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.authorizer.ResolveScope(s.ctx, principalID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *AuthorizerServiceTestSuite) TestResolveScope_DeactivatedPrincipal() {
	principalID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", mock.Anything, principalID).Return(&domain.User{
		UserID:   principalID,
		Role:     domain.RoleTreasurer,
		IsActive: false,
	}, nil).Once()

	_, err := s.authorizer.ResolveScope(s.ctx, principalID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *AuthorizerServiceTestSuite) TestResolveScope_FundDirectorLoadsAssignments() {
	principalID := uuid.NewString()
	fundID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", mock.Anything, principalID).Return(&domain.User{
		UserID:   principalID,
		Role:     domain.RoleFundDirector,
		IsActive: true,
	}, nil).Once()
	s.mockUserRepo.On("FindFundAssignments", mock.Anything, principalID).Return([]string{fundID}, nil).Once()

	scope, err := s.authorizer.ResolveScope(s.ctx, principalID)

	s.Require().NoError(err)
	s.Equal([]string{fundID}, scope.FundIDs)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *AuthorizerServiceTestSuite) TestResolveScope_NonDirectorSkipsAssignments() {
	principalID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", mock.Anything, principalID).Return(&domain.User{
		UserID:   principalID,
		Role:     domain.RoleNationalTreasurer,
		IsActive: true,
	}, nil).Once()

	scope, err := s.authorizer.ResolveScope(s.ctx, principalID)

	s.Require().NoError(err)
	s.Empty(scope.FundIDs)
	s.mockUserRepo.AssertNotCalled(s.T(), "FindFundAssignments", mock.Anything, mock.Anything)
}

func (s *AuthorizerServiceTestSuite) TestCan_AdminReachesEverything() {
	scope := domain.ResolvedScope{UserID: uuid.NewString(), Role: domain.RoleNationalAdmin}

	s.True(s.authorizer.Can(scope, domain.ResourceLedger, domain.ActionReconcile, domain.AuthzTarget{}))
	s.True(s.authorizer.Can(scope, domain.ResourceUser, domain.ActionDelete, domain.AuthzTarget{}))
	s.True(s.authorizer.Can(scope, domain.ResourceReport, domain.ActionProcess, domain.AuthzTarget{}))
}

func (s *AuthorizerServiceTestSuite) TestCan_OwnChurchScope() {
	churchID := uuid.NewString()
	otherChurchID := uuid.NewString()
	scope := domain.ResolvedScope{UserID: uuid.NewString(), Role: domain.RoleTreasurer, ChurchID: &churchID}

	s.True(s.authorizer.Can(scope, domain.ResourceReport, domain.ActionCreate, domain.AuthzTarget{ChurchID: &churchID}))
	s.False(s.authorizer.Can(scope, domain.ResourceReport, domain.ActionCreate, domain.AuthzTarget{ChurchID: &otherChurchID}))
	// national records are out of reach for church-scoped grants
	s.False(s.authorizer.Can(scope, domain.ResourceReport, domain.ActionCreate, domain.AuthzTarget{}))
}

func (s *AuthorizerServiceTestSuite) TestCan_OwnChurchScopeWithoutChurch() {
	scope := domain.ResolvedScope{UserID: uuid.NewString(), Role: domain.RoleTreasurer}
	churchID := uuid.NewString()

	s.False(s.authorizer.Can(scope, domain.ResourceReport, domain.ActionCreate, domain.AuthzTarget{ChurchID: &churchID}))
}

func (s *AuthorizerServiceTestSuite) TestCan_AssignedFundsScope() {
	assignedFundID := uuid.NewString()
	otherFundID := uuid.NewString()
	scope := domain.ResolvedScope{
		UserID:  uuid.NewString(),
		Role:    domain.RoleFundDirector,
		FundIDs: []string{assignedFundID},
	}

	s.True(s.authorizer.Can(scope, domain.ResourceExpense, domain.ActionCreate, domain.AuthzTarget{FundID: &assignedFundID}))
	s.False(s.authorizer.Can(scope, domain.ResourceExpense, domain.ActionCreate, domain.AuthzTarget{FundID: &otherFundID}))
	s.False(s.authorizer.Can(scope, domain.ResourceExpense, domain.ActionCreate, domain.AuthzTarget{}))
}

func (s *AuthorizerServiceTestSuite) TestCan_MissingGrantDenied() {
	churchID := uuid.NewString()
	scope := domain.ResolvedScope{UserID: uuid.NewString(), Role: domain.RoleSecretary, ChurchID: &churchID}

	// secretaries enter reports but never submit or approve them
	s.True(s.authorizer.Can(scope, domain.ResourceReport, domain.ActionCreate, domain.AuthzTarget{ChurchID: &churchID}))
	s.False(s.authorizer.Can(scope, domain.ResourceReport, domain.ActionSubmit, domain.AuthzTarget{ChurchID: &churchID}))
	s.False(s.authorizer.Can(scope, domain.ResourceReport, domain.ActionApprove, domain.AuthzTarget{ChurchID: &churchID}))
}

func (s *AuthorizerServiceTestSuite) TestAuthorize_DeniedWrapsForbidden() {
	principalID := uuid.NewString()
	churchID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", mock.Anything, principalID).Return(&domain.User{
		UserID:   principalID,
		Role:     domain.RoleChurchManager,
		ChurchID: &churchID,
		IsActive: true,
	}, nil).Once()

	_, err := s.authorizer.Authorize(s.ctx, principalID, domain.ResourceReport, domain.ActionApprove, domain.AuthzTarget{ChurchID: &churchID})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAuthorizerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthorizerServiceTestSuite))
}
