package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/models"
	"github.com/taskmaster/taskmaster-api/internal/repository"
)

var (
	ErrRegistrationFields = errors.New("email, name, and password are required")
	ErrCredentialsMissing = errors.New("email and password are required")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// CognitoClient is the subset of the Cognito identity-provider API the
// service uses. Credential and token handling stay behind it.
type CognitoClient interface {
	SignUp(ctx context.Context, params *cognito.SignUpInput, optFns ...func(*cognito.Options)) (*cognito.SignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cognito.InitiateAuthInput, optFns ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error)
}

// AuthService registers users with the identity provider and keeps the
// profile record alongside.
type AuthService struct {
	cognito  CognitoClient
	userRepo repository.UserRepository
	clientID string
}

// NewAuthService creates a new AuthService.
func NewAuthService(cognitoClient CognitoClient, userRepo repository.UserRepository, clientID string) *AuthService {
	return &AuthService{
		cognito:  cognitoClient,
		userRepo: userRepo,
		clientID: clientID,
	}
}

// RegisterInput represents the required information to register a user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginInput represents login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the tokens issued by the identity provider.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
}

// Register signs the user up with the identity provider and stores the
// profile record.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Email == "" || input.Name == "" || input.Password == "" {
		return nil, ErrRegistrationFields
	}

	userID := uuid.NewString()

	_, err := s.cognito.SignUp(ctx, &cognito.SignUpInput{
		ClientId: aws.String(s.clientID),
		Username: aws.String(input.Email),
		Password: aws.String(input.Password),
		UserAttributes: []cognitotypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(input.Email)},
			{Name: aws.String("name"), Value: aws.String(input.Name)},
			{Name: aws.String("custom:userId"), Value: aws.String(userID)},
		},
	})
	if err != nil {
		var exists *cognitotypes.UsernameExistsException
		if errors.As(err, &exists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to sign up user: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user := &models.User{
		UserID:       userID,
		Email:        input.Email,
		Name:         input.Name,
		Subscription: models.SubscriptionFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.SetKeys()

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}

	return user, nil
}

// Login authenticates against the identity provider and returns its tokens.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrCredentialsMissing
	}

	result, err := s.cognito.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: cognitotypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.clientID),
		AuthParameters: map[string]string{
			"USERNAME": input.Email,
			"PASSWORD": input.Password,
		},
	})
	if err != nil {
		var denied *cognitotypes.NotAuthorizedException
		if errors.As(err, &denied) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	login := &LoginResult{}
	if auth := result.AuthenticationResult; auth != nil {
		login.AccessToken = aws.ToString(auth.AccessToken)
		login.RefreshToken = aws.ToString(auth.RefreshToken)
		login.ExpiresIn = auth.ExpiresIn
	}

	return login, nil
}

// GetProfile returns the stored profile for a user.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
