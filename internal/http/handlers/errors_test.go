package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shipdesk/internal/http/response"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/service"
	"github.com/shipdesk/internal/store"

	"github.com/gin-gonic/gin"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response failed: %v (body %s)", err, w.Body.String())
	}
	return envelope
}

func TestRespondServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: store.ErrNotFound, code: response.CodeNotFound},
		{name: "wrapped not found", err: fmt.Errorf("customer 3: %w", store.ErrNotFound), code: response.CodeNotFound},
		{name: "conflict", err: repository.ErrConflict, code: response.CodeConflict},
		{name: "shipment closed", err: service.ErrShipmentClosed, code: response.CodeConflict},
		{name: "same shipment", err: service.ErrSameShipment, code: response.CodeBadRequest},
		{name: "bad credentials", err: service.ErrInvalidCredentials, code: response.CodeUnauthorized},
		{name: "user exists", err: service.ErrUserExists, code: response.CodeConflict},
		{name: "captcha", err: service.ErrCaptchaInvalid, code: response.CodeBadRequest},
		{name: "store down", err: store.ErrUnavailable, code: response.CodeInternal},
		{name: "unknown", err: errors.New("boom"), code: response.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondServiceError(c, tc.err)

			if w.Code != http.StatusOK {
				t.Fatalf("http status = %d, want 200", w.Code)
			}
			if envelope := decodeEnvelope(t, w); envelope.StatusCode != tc.code {
				t.Errorf("status_code = %d, want %d", envelope.StatusCode, tc.code)
			}
		})
	}
}

func TestRespondServiceErrorAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cause := errors.New("mkdir failed")
	wrapped := response.WrapError(response.CodeBadRequest, "图片保存失败", cause)
	if !errors.Is(wrapped, cause) {
		t.Fatalf("wrapped error should unwrap to cause")
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/uploads", nil)

	respondServiceError(c, wrapped)

	envelope := decodeEnvelope(t, w)
	if envelope.StatusCode != response.CodeBadRequest {
		t.Errorf("status_code = %d, want %d", envelope.StatusCode, response.CodeBadRequest)
	}
	if envelope.Msg != "图片保存失败" {
		t.Errorf("msg = %q, want 图片保存失败", envelope.Msg)
	}
}
