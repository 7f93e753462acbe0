package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/sangkips/ledgerly-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token refresh
type AuthService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	txManager   repository.TxManager
	jwtManager  *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	txManager repository.TxManager,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		txManager:   txManager,
		jwtManager:  jwtManager,
	}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	CompanyName string
	FirstName   string
	LastName    string
	Email       string
	Password    string
}

// AuthResult bundles the authenticated user with a token pair
type AuthResult struct {
	User         *entity.User
	Company      *entity.Company
	AccessToken  string
	RefreshToken string
}

// Register creates a company and its owner account in one transaction and
// returns a token pair for the new owner.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// The company references its owner and the owner references the
	// company, so both IDs are fixed up front.
	user := &entity.User{
		ID:        uuid.New(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      entity.RoleOwner,
	}
	company := &entity.Company{
		ID:       uuid.New(),
		Name:     input.CompanyName,
		Slug:     utils.Slugify(input.CompanyName) + "-" + user.ID.String()[:8],
		OwnerID:  user.ID,
		Settings: entity.DefaultCompanySettings(),
	}
	user.CompanyID = company.ID

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return apperror.FromDBError(err, "User")
		}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return apperror.FromDBError(err, "Company")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user, company)
}

// Login verifies credentials and returns a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	company, err := s.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	return s.issueTokens(user, company)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	company, err := s.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	return s.issueTokens(user, company)
}

// GetProfile returns the authenticated user with their company
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, *entity.Company, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperror.NewNotFoundError("User")
	}

	company, err := s.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	return user, company, nil
}

func (s *AuthService) issueTokens(user *entity.User, company *entity.Company) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, company.ID, user.Email, user.FullName(), user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		Company:      company,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
