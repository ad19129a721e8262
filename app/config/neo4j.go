package config

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// InitNeo4j creates the Neo4j driver. The driver connects lazily; readiness
// is checked by the store bootstrap.
func InitNeo4j(db DatabaseConfig, auth Neo4jConfig) (neo4j.DriverWithContext, error) {
	return neo4j.NewDriverWithContext(db.URL,
		neo4j.BasicAuth(auth.Username, auth.Password, ""),
		func(c *neo4j.Config) {
			c.SocketConnectTimeout = db.ConnectTimeout
		},
	)
}
