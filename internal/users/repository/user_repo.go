package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamup-dev/teamup-backend/internal/platform/crypto"
	"github.com/teamup-dev/teamup-backend/internal/users/domain"
)

// UserRepo persists users. Phone numbers are encrypted before they hit the
// database and decrypted on the way out; callers only ever see plaintext.
type UserRepo struct {
	db     *pgxpool.Pool
	secret string
}

func NewUserRepo(db *pgxpool.Pool, encryptionSecret string) *UserRepo {
	return &UserRepo{db: db, secret: encryptionSecret}
}

const userColumns = `
id, firebase_uid, email, name, phone, github_id, profile_image_url,
portfolio, positions, proficiency, tech_stacks, created_at, updated_at`

func (r *UserRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var positions []string
	err := row.Scan(
		&u.ID, &u.FirebaseUID, &u.Email, &u.Name, &u.Phone, &u.GithubID, &u.ProfileImageURL,
		&u.Portfolio, &positions, &u.Proficiency, &u.TechStacks, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Positions = stringsToPositions(positions)

	if u.Phone != "" {
		if u.Phone, err = crypto.Decrypt(u.Phone, r.secret); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `select ` + userColumns + ` from users where id = $1;`

	u, err := r.scanUser(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

// FindByFirebaseUID returns (nil, nil) when no account exists yet; the auth
// flow treats that as "needs onboarding", not as an error.
func (r *UserRepo) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*domain.User, error) {
	const q = `select ` + userColumns + ` from users where firebase_uid = $1;`

	u, err := r.scanUser(r.db.QueryRow(ctx, q, firebaseUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	phone, err := crypto.Encrypt(u.Phone, r.secret)
	if err != nil {
		return nil, err
	}

	const q = `
insert into users (
  id, firebase_uid, email, name, phone, github_id, profile_image_url,
  portfolio, positions, proficiency, tech_stacks
)
values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
returning created_at, updated_at;
`
	err = r.db.QueryRow(ctx, q,
		u.ID, u.FirebaseUID, u.Email, u.Name, phone, u.GithubID, u.ProfileImageURL,
		u.Portfolio, positionsToStrings(u.Positions), u.Proficiency, u.TechStacks,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

// Update rewrites the mutable profile fields. Phone is set at onboarding and
// never changed here.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	const q = `
update users set
  name = $2, github_id = $3, profile_image_url = $4, portfolio = $5,
  positions = $6, proficiency = $7, tech_stacks = $8, updated_at = now()
where id = $1
returning updated_at;
`
	err := r.db.QueryRow(ctx, q,
		u.ID, u.Name, u.GithubID, u.ProfileImageURL, u.Portfolio,
		positionsToStrings(u.Positions), u.Proficiency, u.TechStacks,
	).Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) UpdateProfileImage(ctx context.Context, id, imageURL string) error {
	const q = `update users set profile_image_url = $2, updated_at = now() where id = $1;`

	tag, err := r.db.Exec(ctx, q, id, imageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
