package usecase

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
)

var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var AllowedImageExtensions = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
	"image/gif":  {".gif"},
}

type ValidationResult struct {
	Errors []model.ValidationError
}

func (result ValidationResult) Valid() bool {
	return len(result.Errors) == 0
}

// ErrorMessage joins every error message into one line.
func (result ValidationResult) ErrorMessage() string {
	messages := make([]string, 0, len(result.Errors))
	for _, validationError := range result.Errors {
		messages = append(messages, validationError.Message)
	}

	return strings.Join(messages, " ")
}

func (result *ValidationResult) add(message string, param string) {
	result.Errors = append(result.Errors, model.ValidationError{
		Code:    constant.ERR_VALIDATION_CODE,
		Message: message,
		Param:   param,
	})
}

func ValidateCreatePost(request model.CreatePostRequest) ValidationResult {
	result := ValidationResult{}

	file := request.File
	if file == nil || len(file.Content) == 0 {
		result.add("File is required.", "file")
	} else {
		if len(file.Content) > constant.MAX_FILE_SIZE {
			result.add(fmt.Sprintf("File must be at most %d bytes.", constant.MAX_FILE_SIZE), "file")
		}

		contentType := strings.ToLower(strings.TrimSpace(strings.Split(file.ContentType, ";")[0]))
		if !AllowedImageTypes[contentType] {
			result.add("File must be a jpeg, png, webp or gif image.", "file")
		} else if !hasExtension(file.Name, AllowedImageExtensions[contentType]) {
			result.add("File extension does not match its content type.", "file")
		}
	}

	validateText(&result, request.Caption, request.Description)

	return result
}

func ValidateUpdatePost(request model.UpdatePostRequest) ValidationResult {
	result := ValidationResult{}

	if strings.TrimSpace(request.Id) == "" {
		result.add("Id is required.", "id")
	}

	validateText(&result, request.Caption, request.Description)

	return result
}

func validateText(result *ValidationResult, caption *string, description *string) {
	if caption != nil && utf8.RuneCountInString(*caption) > constant.MAX_CAPTION_LENGTH {
		result.add(fmt.Sprintf("Caption must be at most %d characters.", constant.MAX_CAPTION_LENGTH), "caption")
	}

	if description != nil && utf8.RuneCountInString(*description) > constant.MAX_DESCRIPTION_LENGTH {
		result.add(fmt.Sprintf("Description must be at most %d characters.", constant.MAX_DESCRIPTION_LENGTH), "description")
	}
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}

	return false
}
