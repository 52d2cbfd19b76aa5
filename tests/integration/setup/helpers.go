package setup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"mime/quotedprintable"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TruncateAllTables truncates all tables, children first.
func TruncateAllTables(t *testing.T, db *pgxpool.Pool, ctx context.Context) {
	for _, table := range []string{"posts", "followers", "users"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// CreateTestPNGImage returns a 1x1 transparent PNG.
func CreateTestPNGImage(t *testing.T) []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
		0x89, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
		0x42, 0x60, 0x82,
	}
}

// CreateMultipartFormData builds a multipart body with one file part carrying
// the given content type, plus plain fields.
func CreateMultipartFormData(t *testing.T, fileName string, contentType string, fileData []byte, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value), "failed to write form field %s", key)
	}

	if fileData != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err, "failed to create file part")

		_, err = part.Write(fileData)
		require.NoError(t, err, "failed to write file data")
	}

	require.NoError(t, writer.Close(), "failed to close multipart writer")

	return body, writer.FormDataContentType()
}

// CreateJSONRequest creates a test request with JSON body
func CreateJSONRequest(method, url string, jsonBody []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAuthRequest creates a test request with JSON body and Authorization header
func CreateAuthRequest(method, url string, jsonBody []byte, token string) *http.Request {
	req := CreateJSONRequest(method, url, jsonBody)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

// CreateAuthMultipartRequest creates a test request with multipart body and Authorization header
func CreateAuthMultipartRequest(method, url string, body *bytes.Buffer, contentType string, token string) *http.Request {
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

var confirmTokenPattern = regexp.MustCompile(`token=([A-Za-z0-9_-]+)`)

// GetConfirmTokenFromMailhog polls MailHog for the confirmation mail sent to
// email and returns the token from its link.
func GetConfirmTokenFromMailhog(t *testing.T, mailhogURL, email string) string {
	apiURL := fmt.Sprintf("%s/api/v1/messages", mailhogURL)

	const maxAttempts = 10
	for i := 0; i < maxAttempts; i++ {
		// #nosec G107 -- apiURL is the MailHog test container
		resp, err := http.Get(apiURL)
		require.NoError(t, err, "failed to fetch messages from MailHog")

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err, "failed to read MailHog response")

		var messages []struct {
			Raw struct {
				To []string `json:"To"`
			} `json:"Raw"`
			Content struct {
				Body string `json:"Body"`
			} `json:"Content"`
		}
		require.NoError(t, json.Unmarshal(body, &messages), "failed to parse MailHog response")

		for _, message := range messages {
			if !containsAddress(message.Raw.To, email) {
				continue
			}

			decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(message.Content.Body)))
			require.NoError(t, err, "failed to decode mail body")

			match := confirmTokenPattern.FindStringSubmatch(string(decoded))
			if len(match) > 1 {
				return match[1]
			}
		}

		time.Sleep(500 * time.Millisecond)
	}

	require.Fail(t, "confirmation mail not found", "no mail for %s after %d attempts", email, maxAttempts)
	return ""
}

func containsAddress(addresses []string, email string) bool {
	for _, address := range addresses {
		if strings.EqualFold(address, email) {
			return true
		}
	}

	return false
}

// GenerateRandomString generates a random string of specified length
// Uses lowercase letters and numbers for test data generation
func GenerateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		// #nosec G404 -- Weak randomness is acceptable for non-security test data
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

type UserSession struct {
	Id          string
	Username    string
	Email       string
	AccessToken string
}

// RegisterConfirmedUser registers a user, confirms the email through the link
// sent to MailHog and logs in.
func RegisterConfirmedUser(t *testing.T, app *fiber.App, mailhogURL string) UserSession {
	t.Helper()

	username := "user" + GenerateRandomString(8)
	email := username + "@example.com"
	password := "secret123"

	payload, err := json.Marshal(map[string]string{"username": username, "email": email, "password": password})
	require.NoError(t, err)

	resp, err := app.Test(CreateJSONRequest(fiber.MethodPost, "/api/account/register", payload), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	userId := GetDataAsMap(t, ParseAPIResponse(t, resp))["id"].(string)

	token := GetConfirmTokenFromMailhog(t, mailhogURL, email)
	confirmURL := fmt.Sprintf("/api/account/confirm-email?userId=%s&token=%s", userId, token)
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, confirmURL, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload, err = json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	resp, err = app.Test(CreateJSONRequest(fiber.MethodPost, "/api/account/login", payload), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	accessToken := GetDataAsMap(t, ParseAPIResponse(t, resp))["accessToken"].(string)

	return UserSession{
		Id:          userId,
		Username:    username,
		Email:       email,
		AccessToken: accessToken,
	}
}

// APIResponse represents the standard API response structure
// Support 2 success formats:
// 1. Simple: {"status": "OK"}
// 2. With data: {"data": ...}
type APIResponse struct {
	Status string         `json:"status,omitempty"`
	Data   interface{}    `json:"data,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// ParseAPIResponse parses HTTP response into strongly-typed APIResponse struct
func ParseAPIResponse(t *testing.T, resp *http.Response) APIResponse {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	var apiResp APIResponse
	err = json.Unmarshal(body, &apiResp)
	require.NoError(t, err, "failed to parse JSON response: %s", string(body))

	return apiResp
}

// ParseErrorResponse returns the error object of a failed response.
func ParseErrorResponse(t *testing.T, resp *http.Response) ErrorResponse {
	apiResp := ParseAPIResponse(t, resp)
	require.NotNil(t, apiResp.Error, "response should contain error field")
	return *apiResp.Error
}

// GetDataAsMap extracts data field as map (for single object responses)
func GetDataAsMap(t *testing.T, resp APIResponse) map[string]interface{} {
	require.NotNil(t, resp.Data, "response should have data field")
	dataMap, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data field should be an object/map")
	return dataMap
}

// GetDataAsArray extracts data field as array (for list responses)
func GetDataAsArray(t *testing.T, resp APIResponse) []interface{} {
	require.NotNil(t, resp.Data, "response should have data field")
	dataArray, ok := resp.Data.([]interface{})
	require.True(t, ok, "data field should be an array")
	return dataArray
}

// GetFeed splits a feed response into its posts and next cursor.
func GetFeed(t *testing.T, resp APIResponse) ([]interface{}, string) {
	page := GetDataAsMap(t, resp)

	posts, ok := page["data"].([]interface{})
	require.True(t, ok, "feed data should be an array")

	info, ok := page["page"].(map[string]interface{})
	require.True(t, ok, "feed should have page info")

	nextCursor, _ := info["nextCursor"].(string)
	return posts, nextCursor
}
