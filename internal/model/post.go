package model

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

var ErrPostNotFound = errors.New("post not found")

type Post struct {
	Id           uuid.UUID `json:"id"`
	Caption      string    `json:"caption"`
	Description  string    `json:"description"`
	FileName     string    `json:"fileName"`
	UserId       uuid.UUID `json:"userId"`
	DateCreated  time.Time `json:"dateCreated"`
	DateModified time.Time `json:"dateModified"`
}

type FilePayload struct {
	Name        string
	ContentType string
	Content     []byte
}

type CreatePostRequest struct {
	Caption     *string
	Description *string
	File        *FilePayload
}

type UpdatePostRequest struct {
	Id          string  `json:"id"`
	Caption     *string `json:"caption"`
	Description *string `json:"description"`
}

// BlobContent is an open blob; the receiver must close Reader.
type BlobContent struct {
	Reader      io.ReadCloser
	ContentType string
	Size        int64
}

type PostCursor struct {
	Id          uuid.UUID `json:"id"`
	DateCreated time.Time `json:"dateCreated"`
}

type PageInfo struct {
	NextCursor string `json:"nextCursor"`
}

type PostPage struct {
	Data []Post   `json:"data"`
	Page PageInfo `json:"page"`
}
