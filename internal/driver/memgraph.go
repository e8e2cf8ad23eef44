package driver

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MemgraphDriver talks bolt to Memgraph (or Neo4j) through the neo4j driver.
type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
	// Database is left empty for Memgraph, which has a single database.
	Database string
}

func NewMemgraphDriver(ctx context.Context, uri, username, password, database string) (*MemgraphDriver, error) {
	auth := neo4j.NoAuth()
	if username != "" {
		auth = neo4j.BasicAuth(username, password, "")
	}
	d, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	if err := d.VerifyConnectivity(ctx); err != nil {
		d.Close(ctx)
		return nil, fmt.Errorf("failed to reach memgraph at %s: %w", uri, err)
	}

	log.Printf("driver: connected to event graph at %s", uri)
	return &MemgraphDriver{Driver: d, Database: database}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) options(extra ...neo4j.ExecuteQueryConfigurationOption) []neo4j.ExecuteQueryConfigurationOption {
	if d.Database != "" {
		extra = append(extra, neo4j.ExecuteQueryWithDatabase(d.Database))
	}
	return extra
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer, d.options()...)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *MemgraphDriver) ExecuteRead(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer,
		d.options(neo4j.ExecuteQueryWithReadersRouting())...)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute read query: %w", err)
	}
	return *result, nil
}

// BuildIndices creates the event and location indices. Failures are logged
// and skipped since Memgraph rejects indices that already exist.
func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	created := 0
	for _, q := range IndexQueries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			log.Printf("driver: index skipped (%s): %v", q, err)
			continue
		}
		created++
	}
	log.Printf("driver: %d of %d indices created", created, len(IndexQueries))
	return nil
}
