package public

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/commerce-next/internal/http/response"
	"github.com/commerce-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondCode(t *testing.T, respond func(c *gin.Context, err error), err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("DELETE", "/api/v1/reviews/1", nil)

	respond(c, err)

	var body response.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return body.StatusCode
}

func TestRespondReviewDeleteErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"用户不存在", service.ErrUserNotFound, response.CodeNotFound},
		{"无权删除", service.ErrNoPermissionToDelete, response.CodeForbidden},
		{"未知错误回退", errors.New("db gone"), response.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := respondCode(t, respondReviewDeleteError, tc.err); got != tc.expected {
				t.Fatalf("expected status_code %d, got %d", tc.expected, got)
			}
		})
	}
}
