package models

import "time"

// TokenInfo is the redis-backed API token of one student.
type TokenInfo struct {
	Student         string    `json:"student"`
	Token           string    `json:"token"`
	RequestCount    int       `json:"request_count"`
	LastRequestTime time.Time `json:"last_request_dttm_utc"`
	CreatedTime     time.Time `json:"created_dttm_utc"`
}
