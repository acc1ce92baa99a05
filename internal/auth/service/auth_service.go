package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/teamup-dev/teamup-backend/internal/auth"
	matching "github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/users/domain"
	usersvc "github.com/teamup-dev/teamup-backend/internal/users/service"
)

var phonePattern = regexp.MustCompile(`^010-\d{4}-\d{4}$`)

// IdentityVerifier is the slice of the Firebase Auth client the service uses.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

var ErrInvalidIDToken = fmt.Errorf("invalid id token")

// AuthService exchanges a verified Firebase identity for a service session.
// Unknown identities are told to onboard; known ones get a JWT straight away.
type AuthService struct {
	identity IdentityVerifier
	users    usersvc.UserStore
	issuer   *auth.TokenIssuer
}

func NewAuthService(identity IdentityVerifier, users usersvc.UserStore, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{identity: identity, users: users, issuer: issuer}
}

// LoginResult either carries a session token or asks the client to onboard.
type LoginResult struct {
	NeedsOnboarding bool         `json:"needs_onboarding"`
	Token           string       `json:"token,omitempty"`
	User            *domain.User `json:"user,omitempty"`
}

func (s *AuthService) Login(ctx context.Context, idToken string) (*LoginResult, error) {
	decoded, err := s.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	u, err := s.users.FindByFirebaseUID(ctx, decoded.UID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return &LoginResult{NeedsOnboarding: true}, nil
	}

	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

// OnboardInput carries everything a first-time user registers with.
type OnboardInput struct {
	Name            string
	Email           string
	Phone           string
	GithubID        string
	ProfileImageURL string
	Portfolio       json.RawMessage
	Positions       []matching.Position
	Proficiency     matching.Proficiency
	TechStacks      []string
}

func (in *OnboardInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email required", domain.ErrInvalidInput)
	}
	if !phonePattern.MatchString(in.Phone) {
		return fmt.Errorf("%w: phone must be in format 010-XXXX-XXXX", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.GithubID) == "" {
		return fmt.Errorf("%w: github id required", domain.ErrInvalidInput)
	}
	for _, p := range in.Positions {
		if !p.Valid() {
			return fmt.Errorf("%w: unknown position %q", domain.ErrInvalidInput, string(p))
		}
	}
	if in.Proficiency != "" && !in.Proficiency.Valid() {
		return fmt.Errorf("%w: unknown proficiency %q", domain.ErrInvalidInput, string(in.Proficiency))
	}
	return nil
}

// Onboard creates the account for a verified identity and issues its first
// session token. The token's email, when present, must match the submitted one.
func (s *AuthService) Onboard(ctx context.Context, idToken string, in OnboardInput) (*LoginResult, error) {
	decoded, err := s.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	if err := in.validate(); err != nil {
		return nil, err
	}
	if email, ok := decoded.Claims["email"].(string); ok && !strings.EqualFold(email, in.Email) {
		return nil, fmt.Errorf("%w: email does not match the authenticated account", domain.ErrInvalidInput)
	}

	proficiency := in.Proficiency
	if proficiency == "" {
		proficiency = matching.ProficiencyUnknown
	}

	u := &domain.User{
		FirebaseUID:     decoded.UID,
		Email:           in.Email,
		Name:            in.Name,
		Phone:           in.Phone,
		GithubID:        in.GithubID,
		ProfileImageURL: in.ProfileImageURL,
		Portfolio:       in.Portfolio,
		Positions:       in.Positions,
		Proficiency:     proficiency,
		TechStacks:      in.TechStacks,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(created.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: created}, nil
}
