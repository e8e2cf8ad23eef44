package model

type SubmitAction string

const (
	ActionAdded   SubmitAction = "added"
	ActionUpdated SubmitAction = "updated"
)

// SubmitResult reports what happened to an extracted event.
type SubmitResult struct {
	Action   SubmitAction `json:"action"`
	ID       string       `json:"id"`
	Distance *float64     `json:"distance,omitempty"`
}

// Match is the nearest stored event for a summary embedding.
type Match struct {
	ID       string
	Distance float64
}
