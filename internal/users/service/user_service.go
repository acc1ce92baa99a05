package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	matching "github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/matching/engine"
	"github.com/teamup-dev/teamup-backend/internal/users/domain"
)

const presignExpiry = 15 * time.Minute

var allowedImageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// UserStore is the persistence surface the service needs.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateProfileImage(ctx context.Context, id, imageURL string) error
}

// ImageStore hands out presigned upload URLs and deletes replaced objects.
type ImageStore interface {
	PresignUpload(ctx context.Context, userID, fileName, contentType string, expiresIn time.Duration) (url, key string, err error)
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}

type UserService struct {
	users  UserStore
	images ImageStore
}

func NewUserService(users UserStore, images ImageStore) *UserService {
	return &UserService{users: users, images: images}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfileInput patches a profile; nil fields are left untouched.
// Phone is set once at onboarding and cannot be changed here.
type UpdateProfileInput struct {
	Name        *string
	GithubID    *string
	Portfolio   json.RawMessage
	Positions   []matching.Position
	Proficiency *matching.Proficiency
	TechStacks  []string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		u.Name = *in.Name
	}
	if in.GithubID != nil {
		u.GithubID = *in.GithubID
	}
	if in.Portfolio != nil {
		u.Portfolio = in.Portfolio
	}
	if in.Positions != nil {
		for _, p := range in.Positions {
			if !p.Valid() {
				return nil, fmt.Errorf("%w: unknown position %q", domain.ErrInvalidInput, string(p))
			}
		}
		u.Positions = in.Positions
	}
	if in.Proficiency != nil {
		if !in.Proficiency.Valid() {
			return nil, fmt.Errorf("%w: unknown proficiency %q", domain.ErrInvalidInput, string(*in.Proficiency))
		}
		u.Proficiency = *in.Proficiency
	}
	if in.TechStacks != nil {
		u.TechStacks = in.TechStacks
	}

	return s.users.Update(ctx, u)
}

// PresignResult is what a client needs to upload a profile image directly.
type PresignResult struct {
	PresignedURL string `json:"presigned_url"`
	Key          string `json:"key"`
	FileName     string `json:"file_name"`
	ExpiresIn    int    `json:"expires_in"`
}

// PresignProfileImage validates the file name against the extension
// whitelist and returns a 15 minute PUT URL.
func (s *UserService) PresignProfileImage(ctx context.Context, userID, fileName, contentType string) (*PresignResult, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	ext := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = strings.ToLower(fileName[i+1:])
	}
	if !allowedImageExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported file type, allowed: jpg, jpeg, png, gif, webp", domain.ErrInvalidInput)
	}

	url, key, err := s.images.PresignUpload(ctx, userID, fileName, contentType, presignExpiry)
	if err != nil {
		return nil, err
	}
	return &PresignResult{
		PresignedURL: url,
		Key:          key,
		FileName:     fileName,
		ExpiresIn:    int(presignExpiry.Seconds()),
	}, nil
}

// SetProfileImage points the profile at an uploaded object and deletes the
// previous one. The old delete is best-effort; a dangling object is cheaper
// than a broken profile.
func (s *UserService) SetProfileImage(ctx context.Context, userID, key string) (string, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if u.ProfileImageURL != "" {
		if _, oldKey, found := strings.Cut(u.ProfileImageURL, ".amazonaws.com/"); found && oldKey != "" {
			if err := s.images.Delete(ctx, oldKey); err != nil {
				log.Printf("[users] delete old profile image user=%s: %v", userID, err)
			}
		}
	}

	imageURL := s.images.PublicURL(key)
	if err := s.users.UpdateProfileImage(ctx, userID, imageURL); err != nil {
		return "", err
	}
	return imageURL, nil
}

// GetApplicant exposes the slice of a user the eligibility evaluator needs.
func (s *UserService) GetApplicant(ctx context.Context, userID string) (engine.Applicant, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return engine.Applicant{}, matching.ErrUserNotFound
		}
		return engine.Applicant{}, err
	}
	return engine.Applicant{ID: u.ID, Proficiency: u.Proficiency}, nil
}
