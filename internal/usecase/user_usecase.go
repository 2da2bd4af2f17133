package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tindi/chamaledger/internal/domain"
)

// UserUseCase handles user accounts and session authentication.
type UserUseCase struct {
	userRepo   UserRepository
	sessions   SessionStore
	idGen      IDGenerator
	sessionTTL time.Duration
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, sessions SessionStore, idGen IDGenerator, sessionTTL time.Duration) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		sessions:   sessions,
		idGen:      idGen,
		sessionTTL: sessionTTL,
	}
}

// CreateUserInput represents input for creating a user account.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
	MemberID *string
}

// CreateUser creates a new user with a hashed password.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if !input.Role.IsValid() {
		return nil, errors.New("invalid role")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: hashed,
		Role:           input.Role,
		MemberID:       input.MemberID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// LoginInput represents login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and creates a server-side session, returning
// the opaque token the handler puts in the cookie.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (string, *domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", nil, domain.ErrUnauthenticated
	}

	if !user.Active {
		return "", nil, domain.ErrUnauthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return "", nil, domain.ErrUnauthenticated
	}

	token := uc.idGen.Generate()
	session := &domain.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		MemberID:  user.MemberID,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.sessions.Create(ctx, token, session, uc.sessionTTL); err != nil {
		return "", nil, err
	}

	user.HashedPassword = ""
	return token, user, nil
}

// Logout destroys a session.
func (uc *UserUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to its session.
func (uc *UserUseCase) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	return session, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// SessionTTL returns the configured session lifetime.
func (uc *UserUseCase) SessionTTL() time.Duration {
	return uc.sessionTTL
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
