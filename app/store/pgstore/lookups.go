package pgstore

import (
	"context"
	"time"

	"tasks-go/app/models"
)

func (s *Store) CreateStatus(ctx context.Context, name string) (*models.Status, error) {
	const insertStatusQuery = `
INSERT INTO statuses (name, created_at, updated_at) VALUES ($1, $2, $2)
RETURNING id, name, created_at, updated_at
`
	var status models.Status
	err := s.pool.QueryRow(ctx, insertStatusQuery, name, time.Now().UTC()).Scan(
		&status.ID,
		&status.Name,
		&status.CreatedAt,
		&status.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &status, nil
}

func (s *Store) ListStatuses(ctx context.Context) ([]models.Status, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]models.Status, 0)
	for rows.Next() {
		var status models.Status
		if err := rows.Scan(&status.ID, &status.Name, &status.CreatedAt, &status.UpdatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (s *Store) CountStatuses(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM statuses`).Scan(&count)
	return count, err
}

func (s *Store) CreateUser(ctx context.Context, username string) (*models.User, error) {
	const insertUserQuery = `
INSERT INTO users (username, created_at, updated_at) VALUES ($1, $2, $2)
RETURNING id, username, created_at, updated_at
`
	var user models.User
	err := s.pool.QueryRow(ctx, insertUserQuery, username, time.Now().UTC()).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, username, created_at, updated_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
