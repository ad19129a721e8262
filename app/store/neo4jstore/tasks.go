package neo4jstore

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"tasks-go/app/models"
)

const (
	statusForeignKey = "task_status_id_fkey"
	userForeignKey   = "task_assigned_user_id_fkey"
)

const returnTask = "RETURN t.id AS id, t.title AS title, t.description AS description, " +
	"t.createdAt AS createdAt, t.updatedAt AS updatedAt, " +
	"s.id AS statusId, s.name AS statusName, s.createdAt AS statusCreatedAt, s.updatedAt AS statusUpdatedAt, " +
	"u.id AS userId, u.username AS username, u.createdAt AS userCreatedAt, u.updatedAt AS userUpdatedAt"

const matchTask = "MATCH (t:Task {id: $id}) " +
	"OPTIONAL MATCH (t)-[:HAS_STATUS]->(s:Status) " +
	"OPTIONAL MATCH (t)-[:ASSIGNED_TO]->(u:User) "

func recordToTask(record *neo4j.Record, withRelations bool) models.Task {
	task := models.Task{
		ID:             int64Value(record, "id"),
		Title:          stringValue(record, "title"),
		Description:    optionalString(record, "description"),
		StatusID:       int64Value(record, "statusId"),
		AssignedUserID: int64Value(record, "userId"),
		CreatedAt:      timeValue(record, "createdAt"),
		UpdatedAt:      timeValue(record, "updatedAt"),
	}
	if !withRelations {
		return task
	}

	if v, _ := record.Get("statusId"); v != nil {
		task.Status = &models.Status{
			ID:        task.StatusID,
			Name:      stringValue(record, "statusName"),
			CreatedAt: timeValue(record, "statusCreatedAt"),
			UpdatedAt: timeValue(record, "statusUpdatedAt"),
		}
	}
	if v, _ := record.Get("userId"); v != nil {
		task.User = &models.User{
			ID:        task.AssignedUserID,
			Username:  stringValue(record, "username"),
			CreatedAt: timeValue(record, "userCreatedAt"),
			UpdatedAt: timeValue(record, "userUpdatedAt"),
		}
	}
	return task
}

// checkReferences fails with a foreign key error when a referenced status
// or user is missing. Nil ids are not checked.
func checkReferences(ctx context.Context, tx neo4j.ManagedTransaction, statusID, userID *int64) error {
	params := map[string]any{"statusId": nil, "userId": nil}
	if statusID != nil {
		params["statusId"] = *statusID
	}
	if userID != nil {
		params["userId"] = *userID
	}

	res, err := tx.Run(ctx,
		"OPTIONAL MATCH (s:Status {id: $statusId}) "+
			"WITH s OPTIONAL MATCH (u:User {id: $userId}) "+
			"RETURN s IS NOT NULL AS hasStatus, u IS NOT NULL AS hasUser",
		params,
	)
	if err != nil {
		return err
	}
	record, err := res.Single(ctx)
	if err != nil {
		return err
	}

	hasStatus, _ := record.Get("hasStatus")
	if statusID != nil && hasStatus != true {
		return foreignKeyError("Status", *statusID, statusForeignKey)
	}
	hasUser, _ := record.Get("hasUser")
	if userID != nil && hasUser != true {
		return foreignKeyError("User", *userID, userForeignKey)
	}
	return nil
}

func findTask(ctx context.Context, tx neo4j.ManagedTransaction, id int64, withRelations bool) (*models.Task, error) {
	res, err := tx.Run(ctx, matchTask+returnTask, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}

	if res.Next(ctx) {
		task := recordToTask(res.Record(), withRelations)
		return &task, nil
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

// CreateTask adds a new task linked to its status and user.
func (s *Store) CreateTask(ctx context.Context, task models.NewTask) (*models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := checkReferences(ctx, tx, &task.StatusID, &task.AssignedUserID); err != nil {
			return nil, err
		}

		id, err := nextID(ctx, tx, "Task")
		if err != nil {
			return nil, err
		}

		var description any
		if task.Description != nil {
			description = *task.Description
		}

		_, err = consume(ctx, tx,
			"MATCH (s:Status {id: $statusId}), (u:User {id: $userId}) "+
				"CREATE (t:Task {id: $id, title: $title, description: $description, createdAt: $now, updatedAt: $now}) "+
				"CREATE (t)-[:HAS_STATUS]->(s), (t)-[:ASSIGNED_TO]->(u)",
			map[string]any{
				"id":          id,
				"title":       task.Title,
				"description": description,
				"statusId":    task.StatusID,
				"userId":      task.AssignedUserID,
				"now":         nowUTC(),
			},
		)
		if err != nil {
			return nil, err
		}

		return findTask(ctx, tx, id, false)
	})
	if err != nil {
		return nil, translate(err)
	}
	return result.(*models.Task), nil
}

// ListTasks retrieves all tasks ordered by id.
func (s *Store) ListTasks(ctx context.Context, withRelations bool) ([]models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task) "+
				"OPTIONAL MATCH (t)-[:HAS_STATUS]->(s:Status) "+
				"OPTIONAL MATCH (t)-[:ASSIGNED_TO]->(u:User) "+
				returnTask+" ORDER BY t.id",
			nil,
		)
		if err != nil {
			return nil, err
		}

		tasks := make([]models.Task, 0)
		for res.Next(ctx) {
			tasks = append(tasks, recordToTask(res.Record(), withRelations))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Task), nil
}

// FindTask retrieves a single task by its id.
func (s *Store) FindTask(ctx context.Context, id int64, withRelations bool) (*models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return findTask(ctx, tx, id, withRelations)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Task), nil
}

// UpdateTask applies the patch and relinks the status and user when they change.
func (s *Store) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		current, err := findTask(ctx, tx, id, false)
		if err != nil || current == nil {
			return current, err
		}

		if err := checkReferences(ctx, tx, patch.StatusID, patch.AssignedUserID); err != nil {
			return nil, err
		}

		next := patch.Apply(*current)
		var description any
		if next.Description != nil {
			description = *next.Description
		}

		_, err = consume(ctx, tx,
			"MATCH (t:Task {id: $id}) "+
				"SET t.title = $title, t.description = $description, t.updatedAt = $now",
			map[string]any{
				"id":          id,
				"title":       next.Title,
				"description": description,
				"now":         nowUTC(),
			},
		)
		if err != nil {
			return nil, err
		}

		if patch.StatusID != nil {
			_, err = consume(ctx, tx,
				"MATCH (t:Task {id: $id}), (s:Status {id: $statusId}) "+
					"OPTIONAL MATCH (t)-[r:HAS_STATUS]->() "+
					"DELETE r "+
					"CREATE (t)-[:HAS_STATUS]->(s)",
				map[string]any{"id": id, "statusId": *patch.StatusID},
			)
			if err != nil {
				return nil, err
			}
		}

		if patch.AssignedUserID != nil {
			_, err = consume(ctx, tx,
				"MATCH (t:Task {id: $id}), (u:User {id: $userId}) "+
					"OPTIONAL MATCH (t)-[r:ASSIGNED_TO]->() "+
					"DELETE r "+
					"CREATE (t)-[:ASSIGNED_TO]->(u)",
				map[string]any{"id": id, "userId": *patch.AssignedUserID},
			)
			if err != nil {
				return nil, err
			}
		}

		return findTask(ctx, tx, id, false)
	})
	if err != nil {
		return nil, translate(err)
	}
	return result.(*models.Task), nil
}

// DeleteTask deletes a task and its relationships.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return consume(ctx, tx, "MATCH (t:Task {id: $id}) DETACH DELETE t", map[string]any{"id": id})
	})
	return err
}
