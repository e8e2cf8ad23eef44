package store

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

// MockDriver answers each query with the result registered for it.
type MockDriver struct {
	Results  map[string]neo4j.EagerResult
	Executed []executedQuery
	Err      error
	Indexed  bool
	Reads    int
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.Results[query], nil
}

func (m *MockDriver) ExecuteRead(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Reads++
	return m.ExecuteQuery(ctx, query, params)
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	m.Indexed = true
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MockDriver) last(query string) *executedQuery {
	for i := len(m.Executed) - 1; i >= 0; i-- {
		if m.Executed[i].Query == query {
			return &m.Executed[i]
		}
	}
	return nil
}

func records(key string, values ...interface{}) neo4j.EagerResult {
	var res neo4j.EagerResult
	res.Keys = []string{key}
	for _, v := range values {
		res.Records = append(res.Records, &neo4j.Record{Keys: []string{key}, Values: []interface{}{v}})
	}
	return res
}
