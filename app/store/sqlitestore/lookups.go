package sqlitestore

import (
	"context"
	"time"

	"tasks-go/app/models"
)

func (s *Store) CreateStatus(ctx context.Context, name string) (*models.Status, error) {
	const insertStatusQuery = `
		INSERT INTO statuses (name, created_at, updated_at) VALUES (?, ?, ?)
	`
	now := time.Now().UTC()
	id, err := s.insert(ctx, insertStatusQuery, name, now, now)
	if err != nil {
		return nil, err
	}
	return &models.Status{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *Store) ListStatuses(ctx context.Context) ([]models.Status, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM statuses ORDER BY id`)
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
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM statuses`).Scan(&count)
	return count, err
}

func (s *Store) CreateUser(ctx context.Context, username string) (*models.User, error) {
	const insertUserQuery = `
		INSERT INTO users (username, created_at, updated_at) VALUES (?, ?, ?)
	`
	now := time.Now().UTC()
	id, err := s.insert(ctx, insertUserQuery, username, now, now)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Username: username, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username, created_at, updated_at FROM users ORDER BY id`)
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
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// insert runs an INSERT and returns the new row id.
func (s *Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translate(err)
	}
	return res.LastInsertId()
}
