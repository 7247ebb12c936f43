package command

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

const testSecret = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

// mockServer is a test HTTP server with per-route handlers.
type mockServer struct {
	*httptest.Server
	mux *http.ServeMux
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{mux: http.NewServeMux()}
	m.Server = httptest.NewServer(m.mux)
	t.Cleanup(m.Close)
	return m
}

func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	m.mux.HandleFunc(pattern, handler)
}

// envelope writes the standard response envelope.
func envelope(w http.ResponseWriter, status int, code, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":       code,
		"message":    message,
		"request_id": "req-test",
		"timestamp":  0,
		"data":       data,
	})
}

func okResponse(w http.ResponseWriter, data any) {
	envelope(w, http.StatusOK, "OK", "Success", data)
}

// testEnv holds a CLI context bound to a mock server and captures output.
type testEnv struct {
	ctx        *cli.Context
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	configPath string
}

// makeTestContext creates a CLI context with the global flags plus the
// command's own flags. extraFlags maps flag names to values; args are the
// positional arguments.
func makeTestContext(t *testing.T, server *mockServer, cmdFlags []cli.Flag, extraFlags map[string]any, args ...string) *testEnv {
	t.Helper()

	env := &testEnv{
		stdout:     &bytes.Buffer{},
		stderr:     &bytes.Buffer{},
		configPath: filepath.Join(t.TempDir(), "cli.yaml"),
	}
	app := &cli.App{
		Name:      "test",
		Flags:     globalFlags(),
		Writer:    env.stdout,
		ErrWriter: env.stderr,
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range append(globalFlags(), cmdFlags...) {
		if err := f.Apply(set); err != nil {
			t.Fatalf("apply flag %v: %v", f.Names(), err)
		}
	}

	cliArgs := []string{"--config", env.configPath}
	if server != nil {
		cliArgs = append(cliArgs, "--server", server.URL)
	}
	for name, val := range extraFlags {
		switch v := val.(type) {
		case string:
			cliArgs = append(cliArgs, "--"+name, v)
		case bool:
			cliArgs = append(cliArgs, fmt.Sprintf("--%s=%t", name, v))
		}
	}
	cliArgs = append(cliArgs, args...)

	if err := set.Parse(cliArgs); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	env.ctx = cli.NewContext(app, set, nil)
	return env
}
