package model

import (
	"time"

	"github.com/google/uuid"
)

type Follower struct {
	Id          uuid.UUID `json:"id"`
	FollowerId  uuid.UUID `json:"followerId"`
	FolloweeId  uuid.UUID `json:"followeeId"`
	DateCreated time.Time `json:"dateCreated"`
}
