package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusError is returned for HTTP responses with status >= 400.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// JSONMap handles JSONB fields that the server may return as strings.
type JSONMap map[string]any

func (j *JSONMap) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil {
		*j = m
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "null" {
			*j = make(map[string]any)
			return nil
		}
		return json.Unmarshal([]byte(s), (*map[string]any)(j))
	}
	*j = make(map[string]any)
	return nil
}

// --- Tags ---

// Tag is one entry of the tag directory.
type Tag struct {
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	UsageCount int    `json:"total_count,omitempty"`
}

// --- Entity ---

// Entity types rendered by the dashboard.
const (
	EntityPerson  = "person"
	EntityProject = "project"
	EntityGoal    = "goal"
	EntityEvent   = "event"
	EntityPeriod  = "period"
	EntityNote    = "note"
)

// EntityTypes lists the entity types in display order.
var EntityTypes = []string{EntityPerson, EntityProject, EntityGoal, EntityEvent, EntityPeriod, EntityNote}

// Entity is a node of the knowledge graph.
type Entity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	Status    string    `json:"status,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Tags      []string  `json:"tags"`
	Metadata  JSONMap   `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateEntityInput defines the fields for updating an existing entity.
type UpdateEntityInput struct {
	Name *string   `json:"name,omitempty"`
	Tags *[]string `json:"tags,omitempty"`
}

// --- Chat ---

// Chat modes understood by /api/chat.
const (
	ChatModeChat = "chat"
	ChatModeAdd  = "add"
)

// ChatInput is the body of a chat or add request.
type ChatInput struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Reply   string   `json:"reply"`
	Created []Entity `json:"created,omitempty"`
}

// --- Open loops ---

// OpenLoop is an unresolved reminder surfaced by the API.
type OpenLoop struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Kind       string     `json:"kind,omitempty"`
	EntityID   *string    `json:"entity_id,omitempty"`
	EntityName *string    `json:"entity_name,omitempty"`
	DueAt      *time.Time `json:"due_at,omitempty"`
}

// QueryParams is a map of URL query parameters.
type QueryParams map[string]string
