package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/logger"
	adapter "github.com/botpanel/botpanel/internal/logger/adapter/fiber"
)

// accessLine implements the middleware default json format.
type accessLine struct {
	IP     net.IP `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	User   string `json:"user"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			DisableCheckAlive:        true,
			Console:                  logger.Console{Enabled: true},
		},
		CheckAliveURI: "/api/health",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *accessLine
	}{
		{
			name:       "console disabled no output",
			config:     adapter.Config{},
			targetPath: "/",
		},
		{
			name:       "get / log to console json",
			config:     consoleConfig(),
			targetPath: "/",
			want:       &accessLine{IP: net.ParseIP("0.0.0.0"), Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "raw uri with double slash and query",
			config:     consoleConfig(),
			targetPath: "/no_path//?test=123",
			want:       &accessLine{IP: net.ParseIP("0.0.0.0"), Status: 404, URI: "/no_path//?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "authenticated user is logged",
			config:     consoleConfig(),
			targetPath: "/me",
			want:       &accessLine{IP: net.ParseIP("0.0.0.0"), Status: 200, URI: "/me", Method: fiber.MethodGet, Host: "example.com", User: "alice"},
		},
		{
			name:       "health check is skipped",
			config:     consoleConfig(),
			targetPath: "/api/health",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testMiddlewareHelper(t, tt.targetPath, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &got))

			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.IP, got.IP)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, tt.want.User, got.User)
		})
	}
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})
	app.Get("/me", func(ctx *fiber.Ctx) error {
		ctx.Locals(adapter.UserLocalKey, "alice")
		return ctx.SendString("alice")
	})
	app.Get("/api/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), -1)

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// back to normal state
	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr
	out := <-outC

	require.NoError(t, err)

	return out
}
