// Package models - model kịch bản (Script) và giọng đọc đi kèm.
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Script là kịch bản thuyết minh của một dự án
type Script struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId" index:"single:1;compound:owner_project"`
	ProjectID primitive.ObjectID `json:"projectId" bson:"projectId" index:"single:1;compound:owner_project"`

	// Brief
	Topic         string `json:"topic" bson:"topic"`
	Tone          string `json:"tone" bson:"tone"`
	Style         string `json:"style" bson:"style"`
	LengthMinutes int    `json:"lengthMinutes" bson:"lengthMinutes"`
	Chapters      int    `json:"chapters" bson:"chapters"`

	// Nội dung và số liệu suy ra
	Outline         []string `json:"outline" bson:"outline"`
	Content         string   `json:"content" bson:"content"`
	TargetWordCount int      `json:"targetWordCount" bson:"targetWordCount"`
	ActualWordCount int      `json:"actualWordCount" bson:"actualWordCount"`

	Status ScriptStatus `json:"status" bson:"status"`
	Error  string       `json:"error" bson:"error"`

	Voice *ScriptVoice `json:"voice,omitempty" bson:"voice,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// ScriptVoice là bản thu giọng đọc hiện tại của kịch bản; audio nằm trong AudioStore theo AudioKey
type ScriptVoice struct {
	Provider        string   `json:"provider" bson:"provider"`
	VoiceID         string   `json:"voiceId" bson:"voiceId"`
	VoiceName       string   `json:"voiceName" bson:"voiceName"`
	AudioFormat     string   `json:"audioFormat" bson:"audioFormat"`
	AudioKey        string   `json:"-" bson:"audioKey"`
	AudioBytes      int64    `json:"audioBytes" bson:"audioBytes"`
	DurationSeconds *float64 `json:"durationSeconds,omitempty" bson:"durationSeconds,omitempty"`
	CreatedAt       int64    `json:"createdAt" bson:"createdAt"`
	UpdatedAt       int64    `json:"updatedAt" bson:"updatedAt"`
}

// HasContent trả về true khi kịch bản có nội dung để đọc
func (s *Script) HasContent() bool {
	return strings.TrimSpace(s.Content) != ""
}
