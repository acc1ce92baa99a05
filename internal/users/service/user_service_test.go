package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matching "github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/users/domain"
)

type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByFirebaseUID(_ context.Context, firebaseUID string) (*domain.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID == firebaseUID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := f.users[u.ID]; ok {
		return nil, domain.ErrAlreadyExists
	}
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUserStore) UpdateProfileImage(_ context.Context, id, imageURL string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.ProfileImageURL = imageURL
	return nil
}

type fakeImageStore struct {
	deleted []string
}

func (f *fakeImageStore) PresignUpload(_ context.Context, userID, fileName, _ string, _ time.Duration) (string, string, error) {
	key := fmt.Sprintf("profiles/%s/123-%s", userID, fileName)
	return "https://signed.example.com/" + key, key, nil
}

func (f *fakeImageStore) PublicURL(key string) string {
	return "https://bucket.s3.region.amazonaws.com/" + key
}

func (f *fakeImageStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func newUserService(t *testing.T) (*UserService, *fakeUserStore, *fakeImageStore) {
	t.Helper()
	store := newFakeUserStore()
	images := &fakeImageStore{}
	store.users["u1"] = &domain.User{
		ID:          "u1",
		Name:        "alice",
		Email:       "alice@example.com",
		Proficiency: matching.ProficiencySilver,
	}
	return NewUserService(store, images), store, images
}

func TestUpdateProfile(t *testing.T) {
	t.Run("patches only provided fields", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		name := "alice two"
		u, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{
			Name:       &name,
			TechStacks: []string{"GO", "POSTGRES"},
		})
		require.NoError(t, err)
		assert.Equal(t, "alice two", u.Name)
		assert.Equal(t, []string{"GO", "POSTGRES"}, u.TechStacks)
		assert.Equal(t, matching.ProficiencySilver, u.Proficiency)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		name := "  "
		_, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{Name: &name})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects unknown position", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		_, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{
			Positions: []matching.Position{"WIZARD"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		_, err := svc.UpdateProfile(context.Background(), "ghost", UpdateProfileInput{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPresignProfileImage(t *testing.T) {
	t.Run("allows whitelisted extensions", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		res, err := svc.PresignProfileImage(context.Background(), "u1", "pic.JPG", "image/jpeg")
		require.NoError(t, err)
		assert.Contains(t, res.PresignedURL, "profiles/u1/")
		assert.Equal(t, 900, res.ExpiresIn)
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		for _, name := range []string{"pic.exe", "pic", "pic.svg"} {
			_, err := svc.PresignProfileImage(context.Background(), "u1", name, "image/jpeg")
			assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
		}
	})
}

func TestSetProfileImage(t *testing.T) {
	t.Run("sets public url", func(t *testing.T) {
		svc, store, _ := newUserService(t)

		url, err := svc.SetProfileImage(context.Background(), "u1", "profiles/u1/123-pic.png")
		require.NoError(t, err)
		assert.Equal(t, "https://bucket.s3.region.amazonaws.com/profiles/u1/123-pic.png", url)

		u, err := store.FindByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, url, u.ProfileImageURL)
	})

	t.Run("deletes the replaced object", func(t *testing.T) {
		svc, store, images := newUserService(t)
		store.users["u1"].ProfileImageURL = "https://bucket.s3.region.amazonaws.com/profiles/u1/old.png"

		_, err := svc.SetProfileImage(context.Background(), "u1", "profiles/u1/new.png")
		require.NoError(t, err)
		assert.Equal(t, []string{"profiles/u1/old.png"}, images.deleted)
	})
}

func TestGetApplicant(t *testing.T) {
	svc, _, _ := newUserService(t)

	a, err := svc.GetApplicant(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", a.ID)
	assert.Equal(t, matching.ProficiencySilver, a.Proficiency)

	_, err = svc.GetApplicant(context.Background(), "ghost")
	assert.ErrorIs(t, err, matching.ErrUserNotFound)
}
