package neo4jstore

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"tasks-go/app/models"
)

func (s *Store) CreateStatus(ctx context.Context, name string) (*models.Status, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		id, err := nextID(ctx, tx, "Status")
		if err != nil {
			return nil, err
		}

		now := nowUTC()
		_, err = consume(ctx, tx,
			"CREATE (:Status {id: $id, name: $name, createdAt: $now, updatedAt: $now})",
			map[string]any{"id": id, "name": name, "now": now},
		)
		if err != nil {
			return nil, err
		}
		return &models.Status{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return result.(*models.Status), nil
}

func (s *Store) ListStatuses(ctx context.Context) ([]models.Status, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (s:Status) RETURN s.id AS id, s.name AS name, s.createdAt AS createdAt, s.updatedAt AS updatedAt "+
				"ORDER BY s.id",
			nil,
		)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}

		statuses := make([]models.Status, 0, len(records))
		for _, record := range records {
			statuses = append(statuses, models.Status{
				ID:        int64Value(record, "id"),
				Name:      stringValue(record, "name"),
				CreatedAt: timeValue(record, "createdAt"),
				UpdatedAt: timeValue(record, "updatedAt"),
			})
		}
		return statuses, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Status), nil
}

func (s *Store) CountStatuses(ctx context.Context) (int, error) {
	return count(ctx, s.driver, "Status")
}

func (s *Store) CreateUser(ctx context.Context, username string) (*models.User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		id, err := nextID(ctx, tx, "User")
		if err != nil {
			return nil, err
		}

		now := nowUTC()
		_, err = consume(ctx, tx,
			"CREATE (:User {id: $id, username: $username, createdAt: $now, updatedAt: $now})",
			map[string]any{"id": id, "username": username, "now": now},
		)
		if err != nil {
			return nil, err
		}
		return &models.User{ID: id, Username: username, CreatedAt: now, UpdatedAt: now}, nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return result.(*models.User), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (u:User) RETURN u.id AS id, u.username AS username, u.createdAt AS createdAt, u.updatedAt AS updatedAt "+
				"ORDER BY u.id",
			nil,
		)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}

		users := make([]models.User, 0, len(records))
		for _, record := range records {
			users = append(users, models.User{
				ID:        int64Value(record, "id"),
				Username:  stringValue(record, "username"),
				CreatedAt: timeValue(record, "createdAt"),
				UpdatedAt: timeValue(record, "updatedAt"),
			})
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.User), nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	return count(ctx, s.driver, "User")
}
