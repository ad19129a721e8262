// Package neo4jstore implements the task gateway on Neo4j.
//
// Tasks link to their status and user through HAS_STATUS and ASSIGNED_TO
// relationships. Neo4j has no foreign keys, so every write checks that the
// referenced nodes exist inside the same transaction and reports a
// *store.ConstraintError when they do not. Integer ids come from one
// Sequence node per label.
package neo4jstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"tasks-go/app/store"
)

var _ store.Store = (*Store)(nil)

const constraintValidationFailed = "Neo.ClientError.Schema.ConstraintValidationFailed"

// Store handles task, status and user operations against Neo4j.
type Store struct {
	driver neo4j.DriverWithContext
}

// New creates a Store on top of an existing driver.
func New(driver neo4j.DriverWithContext) *Store {
	return &Store{driver: driver}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

var schema = []string{
	"CREATE CONSTRAINT status_name_unique IF NOT EXISTS FOR (s:Status) REQUIRE s.name IS UNIQUE",
	"CREATE CONSTRAINT status_id_unique IF NOT EXISTS FOR (s:Status) REQUIRE s.id IS UNIQUE",
	"CREATE CONSTRAINT user_username_unique IF NOT EXISTS FOR (u:User) REQUIRE u.username IS UNIQUE",
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
	"CREATE CONSTRAINT task_id_unique IF NOT EXISTS FOR (t:Task) REQUIRE t.id IS UNIQUE",
	"CREATE CONSTRAINT sequence_name_unique IF NOT EXISTS FOR (seq:Sequence) REQUIRE seq.name IS UNIQUE",
}

// Migrate creates the uniqueness constraints. Schema commands cannot share
// a transaction with data writes, so each one runs on its own.
func (s *Store) Migrate(ctx context.Context, force bool) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if force {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return consume(ctx, tx,
				"MATCH (n) WHERE n:Task OR n:Status OR n:User OR n:Sequence DETACH DELETE n",
				nil,
			)
		})
		if err != nil {
			return err
		}
	}

	for _, stmt := range schema {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return consume(ctx, tx, stmt, nil)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// nextID increments and returns the id sequence for label.
func nextID(ctx context.Context, tx neo4j.ManagedTransaction, label string) (int64, error) {
	res, err := tx.Run(ctx,
		"MERGE (seq:Sequence {name: $name}) "+
			"ON CREATE SET seq.value = 0 "+
			"SET seq.value = seq.value + 1 "+
			"RETURN seq.value AS id",
		map[string]any{"name": label},
	)
	if err != nil {
		return 0, err
	}
	record, err := res.Single(ctx)
	if err != nil {
		return 0, err
	}
	return int64Value(record, "id"), nil
}

func consume(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) (any, error) {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	_, err = res.Consume(ctx)
	return nil, err
}

func count(ctx context.Context, driver neo4j.DriverWithContext, label string) (int, error) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS n", label), nil)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return int64Value(record, "n"), nil
	})
	if err != nil {
		return 0, err
	}
	return int(result.(int64)), nil
}

// translate maps uniqueness constraint failures to *store.ConstraintError.
func translate(err error) error {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == constraintValidationFailed {
		return &store.ConstraintError{Kind: store.Unique, Message: neoErr.Msg, Err: err}
	}
	return err
}

func foreignKeyError(label string, id int64, constraint string) error {
	return &store.ConstraintError{
		Kind:       store.ForeignKey,
		Constraint: constraint,
		Message: fmt.Sprintf("insert or update on Task violates foreign key constraint %q: %s %d does not exist",
			constraint, label, id),
	}
}

func int64Value(record *neo4j.Record, key string) int64 {
	v, _ := record.Get(key)
	n, _ := v.(int64)
	return n
}

func stringValue(record *neo4j.Record, key string) string {
	v, _ := record.Get(key)
	str, _ := v.(string)
	return str
}

func optionalString(record *neo4j.Record, key string) *string {
	v, _ := record.Get(key)
	str, ok := v.(string)
	if !ok {
		return nil
	}
	return &str
}

func timeValue(record *neo4j.Record, key string) time.Time {
	v, _ := record.Get(key)
	t, _ := v.(time.Time)
	return t
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
