package session

import "time"

// Event is the provenance record of one verified repair: appended only
// after the replacement selector resolved and the wrapped action completed.
// Immutable once appended; the log lives and dies with its session.
type Event struct {
	Original  string    `json:"originalSelector"`
	Healed    string    `json:"healedSelector"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"providerName"`
}
