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
	"github.com/ipupy/tesoreria_backend/internal/dto"
	"github.com/ipupy/tesoreria_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	userService  portssvc.UserSvcFacade
	ctx          context.Context

	adminID  string
	churchID string
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	authorizer := services.NewAuthorizerService(s.mockUserRepo)
	s.userService = services.NewUserService(s.mockUserRepo, authorizer)
	s.ctx = context.Background()

	s.adminID = uuid.NewString()
	s.churchID = uuid.NewString()

	s.mockUserRepo.On("FindUserByID", mock.Anything, s.adminID).Return(&domain.User{
		UserID:   s.adminID,
		Role:     domain.RoleNationalAdmin,
		IsActive: true,
	}, nil).Maybe()
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	churchID := s.churchID
	req := dto.CreateUserRequest{
		Email:    "tesorero@ipupy.org.py",
		Name:     "Tesorero Local",
		Password: "correcthorse",
		Role:     domain.RoleTreasurer,
		ChurchID: &churchID,
	}
	s.mockUserRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email &&
			u.Role == domain.RoleTreasurer &&
			u.IsActive &&
			u.PasswordHash != "" &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := s.userService.CreateUser(s.ctx, s.adminID, req)

	s.Require().NoError(err)
	s.Equal(domain.RoleTreasurer, user.Role)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_ChurchRoleRequiresChurch() {
	req := dto.CreateUserRequest{
		Email:    "pastor@ipupy.org.py",
		Name:     "Pastor",
		Password: "correcthorse",
		Role:     domain.RolePastor,
	}

	_, err := s.userService.CreateUser(s.ctx, s.adminID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUser_NationalRoleRejectsChurch() {
	churchID := s.churchID
	req := dto.CreateUserRequest{
		Email:    "nacional@ipupy.org.py",
		Name:     "Tesorero Nacional",
		Password: "correcthorse",
		Role:     domain.RoleNationalTreasurer,
		ChurchID: &churchID,
	}

	_, err := s.userService.CreateUser(s.ctx, s.adminID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestCreateUser_NonAdminForbidden() {
	treasurerID := uuid.NewString()
	churchID := s.churchID
	s.mockUserRepo.On("FindUserByID", mock.Anything, treasurerID).Return(&domain.User{
		UserID:   treasurerID,
		Role:     domain.RoleTreasurer,
		ChurchID: &churchID,
		IsActive: true,
	}, nil).Once()

	_, err := s.userService.CreateUser(s.ctx, treasurerID, dto.CreateUserRequest{
		Email:    "alguien@ipupy.org.py",
		Name:     "Alguien",
		Password: "correcthorse",
		Role:     domain.RoleSecretary,
		ChurchID: &churchID,
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestUpdateUserRole_AssignsFundDirector() {
	userID := uuid.NewString()
	fundID := uuid.NewString()
	existing := &domain.User{UserID: userID, Role: domain.RoleSecretary, IsActive: true}
	updated := &domain.User{UserID: userID, Role: domain.RoleFundDirector, IsActive: true}

	s.mockUserRepo.On("FindUserByID", mock.Anything, userID).Return(existing, nil).Once()
	s.mockUserRepo.On("UpdateUserRole", mock.Anything, userID, domain.RoleFundDirector, (*string)(nil), []string{fundID}, s.adminID, mock.Anything).Return(nil).Once()
	s.mockUserRepo.On("FindUserByID", mock.Anything, userID).Return(updated, nil).Once()

	user, err := s.userService.UpdateUserRole(s.ctx, s.adminID, userID, dto.UpdateUserRoleRequest{
		Role:    domain.RoleFundDirector,
		FundIDs: []string{fundID},
	})

	s.Require().NoError(err)
	s.Equal(domain.RoleFundDirector, user.Role)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticate_Success() {
	hash, err := utils.HashPassword("correcthorse")
	s.Require().NoError(err)
	email := "tesorero@ipupy.org.py"
	s.mockUserRepo.On("FindUserByEmail", mock.Anything, email).Return(&domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleTreasurer,
		IsActive:     true,
	}, nil).Once()

	user, err := s.userService.Authenticate(s.ctx, email, "correcthorse")

	s.Require().NoError(err)
	s.Equal(email, user.Email)
}

func (s *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	hash, err := utils.HashPassword("correcthorse")
	s.Require().NoError(err)
	email := "tesorero@ipupy.org.py"
	s.mockUserRepo.On("FindUserByEmail", mock.Anything, email).Return(&domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}, nil).Once()

	_, err = s.userService.Authenticate(s.ctx, email, "wrongpassword")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *UserServiceTestSuite) TestAuthenticate_UnknownEmail() {
	s.mockUserRepo.On("FindUserByEmail", mock.Anything, "nadie@ipupy.org.py").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.userService.Authenticate(s.ctx, "nadie@ipupy.org.py", "whatever")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *UserServiceTestSuite) TestAuthenticate_DeactivatedUser() {
	hash, err := utils.HashPassword("correcthorse")
	s.Require().NoError(err)
	email := "baja@ipupy.org.py"
	s.mockUserRepo.On("FindUserByEmail", mock.Anything, email).Return(&domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     false,
	}, nil).Once()

	_, err = s.userService.Authenticate(s.ctx, email, "correcthorse")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *UserServiceTestSuite) TestFindOrProvisionOAuthUser_ExistingUser() {
	email := "conocido@ipupy.org.py"
	existing := &domain.User{UserID: uuid.NewString(), Email: email, Role: domain.RoleTreasurer, IsActive: true}
	s.mockUserRepo.On("FindUserByEmail", mock.Anything, email).Return(existing, nil).Once()

	user, err := s.userService.FindOrProvisionOAuthUser(s.ctx, email, "Conocido")

	s.Require().NoError(err)
	s.Equal(existing.UserID, user.UserID)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestFindOrProvisionOAuthUser_ProvisionsSecretary() {
	email := "nuevo@ipupy.org.py"
	s.mockUserRepo.On("FindUserByEmail", mock.Anything, email).Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == email && u.Role == domain.RoleSecretary && u.IsActive && u.PasswordHash == ""
	})).Return(nil).Once()

	user, err := s.userService.FindOrProvisionOAuthUser(s.ctx, email, "Nuevo Usuario")

	s.Require().NoError(err)
	s.Equal(domain.RoleSecretary, user.Role)
	s.mockUserRepo.AssertExpectations(s.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
