package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"re-ad-be/pkg/annotation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestParseUserID(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"user_id": "2f1c6a8e-1111-4a4a-9b9b-000000000001",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	userID, err := ParseUserID(valid, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "2f1c6a8e-1111-4a4a-9b9b-000000000001", userID)

	_, err = ParseUserID(valid, "other-secret")
	assert.Error(t, err)

	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"user_id": "u",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	_, err = ParseUserID(expired, testSecret)
	assert.Error(t, err)

	noClaim := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "x"})
	_, err = ParseUserID(noClaim, testSecret)
	assert.EqualError(t, err, "missing user_id claim")

	_, err = ParseUserID("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/me", NewJwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user_id": "abc"})
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc", string(body))
}

type createReadRequest struct {
	Title string `json:"title" validate:"required"`
	Type  string `json:"type" validate:"oneof=text area"`
}

func TestValidateRequest_ReportsJSONNames(t *testing.T) {
	err := ValidateRequest(createReadRequest{Type: "video"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "required", vErr.Fields["title"])
	assert.Equal(t, "oneof=text area", vErr.Fields["type"])

	assert.NoError(t, ValidateRequest(createReadRequest{Title: "x", Type: "text"}))
}

type teapot struct{}

func (teapot) Error() string   { return "teapot" }
func (teapot) StatusCode() int { return fiber.StatusTeapot }

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fiber.NewError(fiber.StatusUnauthorized, "nope"), fiber.StatusUnauthorized},
		{&ValidationError{Fields: map[string]string{"title": "required"}}, fiber.StatusBadRequest},
		{teapot{}, fiber.StatusTeapot},
		{fmt.Errorf("%w: 9", annotation.ErrReadNotFound), fiber.StatusNotFound},
		{annotation.ErrHighlightNotFound, fiber.StatusNotFound},
		{annotation.ErrNoCurrentRead, fiber.StatusConflict},
		{annotation.ErrEmptyTitle, fiber.StatusBadRequest},
		{annotation.ErrInvalidSnapshot, fiber.StatusBadRequest},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestErrorHandlerMiddleware_HidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(ctx *fiber.Ctx) error { return errors.New("db password leaked") })
	app.Get("/missing", func(ctx *fiber.Ctx) error { return annotation.ErrNodeNotFound })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body Response[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSuccessResponse(t *testing.T) {
	r := SuccessResponse("ok", []string{"a"})
	assert.True(t, r.Success)
	assert.Equal(t, 200, r.Code)
	assert.Equal(t, []string{"a"}, r.Data)
}
