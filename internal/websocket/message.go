package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	TypeSyncStarted   MessageType = "sync_started"
	TypeCourseSynced  MessageType = "course_synced"
	TypeSyncCompleted MessageType = "sync_completed"
	TypePing          MessageType = "ping"
	TypePong          MessageType = "pong"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type SyncStartedPayload struct {
	RemoteCourses int `json:"remote_courses"`
}

type CourseSyncedPayload struct {
	CourseID   string `json:"course_id"`
	Name       string `json:"name"`
	FilesAdded int    `json:"files_added"`
}

type SyncCompletedPayload struct {
	CoursesAdded int `json:"courses_added"`
	FilesAdded   int `json:"files_added"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = bytes
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payloadBytes,
	}, nil
}

func (m *Message) UnmarshalPayload(v interface{}) error {
	if m.Payload == nil {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
