package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name          string
		requestID     string
		handler       gin.HandlerFunc
		wantStatus    int
		wantLevel     string
		wantRequestID bool
	}{
		{
			name:      "KeepsRequestID",
			requestID: "req-1",
			handler: func(c *gin.Context) {
				zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
				c.Status(http.StatusOK)
			},
			wantStatus: http.StatusOK,
			wantLevel:  "info",
		},
		{
			name: "GeneratesRequestID",
			handler: func(c *gin.Context) {
				c.Status(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantLevel:  "info",
		},
		{
			name:      "ServerErrorLoggedAsError",
			requestID: "req-3",
			handler: func(c *gin.Context) {
				c.Status(http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
			wantLevel:  "error",
		},
		{
			name:      "RecoversPanic",
			requestID: "req-4",
			handler: func(c *gin.Context) {
				panic("boom")
			},
			wantStatus: http.StatusInternalServerError,
			wantLevel:  "error",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			engine := gin.New()
			engine.Use(RequestLogger(logger))
			engine.GET("/", tc.handler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.requestID != "" {
				req.Header.Set(RequestIDHeader, tc.requestID)
			}

			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, req)

			if recorder.Code != tc.wantStatus {
				t.Errorf("Status code: got %v, want %v", recorder.Code, tc.wantStatus)
			}

			gotID := recorder.Header().Get(RequestIDHeader)
			if gotID == "" {
				t.Fatalf("response header %v is empty", RequestIDHeader)
			}

			if tc.requestID != "" && gotID != tc.requestID {
				t.Errorf("response %v = %q, want %q", RequestIDHeader, gotID, tc.requestID)
			}

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))

			var last struct {
				Level      string `json:"level"`
				RequestID  string `json:"request_id"`
				StatusCode int    `json:"status_code"`
				Method     string `json:"method"`
				Path       string `json:"path"`
			}

			if err := json.Unmarshal(lines[len(lines)-1], &last); err != nil {
				t.Fatalf("json.Unmarshal(%s) returned error: %v", lines[len(lines)-1], err)
			}

			if last.Level != tc.wantLevel {
				t.Errorf("log level = %q, want %q", last.Level, tc.wantLevel)
			}

			if last.RequestID != gotID {
				t.Errorf("log request_id = %q, want %q", last.RequestID, gotID)
			}

			if last.StatusCode != tc.wantStatus || last.Method != http.MethodGet || last.Path != "/" {
				t.Errorf("log line = %+v, want GET / %v", last, tc.wantStatus)
			}
		})
	}
}
