package models

import "time"

// ChatLink ties a telegram user to a student id.
type ChatLink struct {
	Student    string    `json:"student"`
	Username   string    `json:"username"`
	ChatID     int64     `json:"chat_id"`
	LinkedTime time.Time `json:"linked_time"`
}
