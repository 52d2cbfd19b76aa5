package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PostEventCreated = "post.created"
	PostEventDeleted = "post.deleted"
)

type PostEvent struct {
	Type       string    `json:"type"`
	PostId     uuid.UUID `json:"postId"`
	UserId     uuid.UUID `json:"userId"`
	FileName   string    `json:"fileName"`
	OccurredAt time.Time `json:"occurredAt"`
}
