package db

import (
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/model"
)

// CreateUser inserts a new admin user and returns its id.
func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	const q = `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;`
	var newID int
	if err := s.db.QueryRow(q, email, hashedPassword, name).Scan(&newID); err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	const q = `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE email = $1;`
	if err := s.db.Get(&u, q, email); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	const q = `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE id = $1;`
	if err := s.db.Get(&u, q, id); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// UpdateUserProfile updates email/name and bumps updated_at. Returns
// ErrNotFound when the user does not exist.
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	res, err := s.db.Exec(`
		UPDATE users
		SET email = $2,
		    name = $3,
		    updated_at = now()
		WHERE id = $1;`, id, email, name)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("failed to update user profile")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
