package constant

import "time"

const (
	DEFAULT_LIMIT = 20
	MAX_LIMIT     = 100

	MAX_FILE_SIZE          = 10 * 1024 * 1024
	MAX_CAPTION_LENGTH     = 150
	MAX_DESCRIPTION_LENGTH = 2000

	MIN_USERNAME_LENGTH = 4
	MAX_USERNAME_LENGTH = 22
	MIN_PASSWORD_LENGTH = 5
	MAX_PASSWORD_LENGTH = 64
	MAX_EMAIL_LENGTH    = 80

	CONFIRM_EMAIL_TOKEN_TTL = 24 * time.Hour
)
