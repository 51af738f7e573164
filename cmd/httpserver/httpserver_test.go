package httpserver_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/eventpkg"
)

func TestPanicIsLoggedOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer

	server, err := httpserver.New(nil, zerolog.New(&buf), configpkg.Config{}, eventpkg.NopPublisher{})
	if err != nil {
		t.Fatalf("httpserver.New() returned error: %v", err)
	}

	server.Engine.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Status code: got %v, want %v", recorder.Code, http.StatusInternalServerError)
	}

	if got := strings.Count(buf.String(), "panic message: boom"); got != 1 {
		t.Errorf("panic logged %d times, want 1; log:\n%s", got, buf.String())
	}
}
