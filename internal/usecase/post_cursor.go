package usecase

import (
	"encoding/base64"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

func EncodePostCursor(cursor model.PostCursor) (string, error) {
	b, err := sonic.Marshal(cursor)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodePostCursor returns nil for an empty cursor, i.e. the first page.
func DecodePostCursor(cursor string) (*model.PostCursor, error) {
	if cursor == "" {
		return nil, nil
	}

	invalid := &model.ValidationError{
		Code:    constant.ERR_VALIDATION_CODE,
		Message: "Cursor is invalid",
		Param:   "cursor",
	}

	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, invalid
	}

	var postCursor model.PostCursor
	err = sonic.Unmarshal(b, &postCursor)
	if err != nil || postCursor.Id == uuid.Nil || postCursor.DateCreated.IsZero() {
		return nil, invalid
	}

	return &postCursor, nil
}
