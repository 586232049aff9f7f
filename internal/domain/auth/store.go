package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, email, name, role, password_hash, status, created_at
    FROM users
    WHERE lower(email) = lower($1) AND status = 'active'
  `, email)

	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.PasswordHash, &user.Status, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE id = $1`, userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&count)
	return count, err
}

func (s *Store) CreateUser(ctx context.Context, email, name, role, passwordHash string) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO users (id, email, name, role, password_hash, status, created_at)
    VALUES ($1, $2, $3, $4, $5, 'active', now())
    ON CONFLICT (email) DO NOTHING
  `, id, email, name, role, passwordHash)
	if err != nil {
		return "", err
	}
	return id, nil
}
