package gate_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for doorman end-to-end tests.
 * This includes container setup, a stub media server, and assertions.
 */

const (
	testImageName = "doorman-test:latest"

	adminUsername = "admin"
	adminPassword = "Admin123!"
	mediaToken    = "test-media-token-12345"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Doorman Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Doorman Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/doorman/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// mediaStub is a fake Emby-compatible media server. It accepts every user
// creation unless the name was already created, mirroring the 400 the
// real server returns for duplicates.
type mediaStub struct {
	mu    sync.Mutex
	users map[string]bool
	srv   *httptest.Server
	port  int
}

func newMediaStub(t *testing.T) *mediaStub {
	t.Helper()

	stub := &mediaStub{users: map[string]bool{}}
	stub.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Users/New" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("X-Emby-Token") != mediaToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var body struct {
			Name string `json:"Name"`
		}
		if err := jsonDecode(r, &body); err != nil || body.Name == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		stub.mu.Lock()
		defer stub.mu.Unlock()
		if stub.users[body.Name] {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		stub.users[body.Name] = true
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(stub.srv.Close)

	_, portStr, err := net.SplitHostPort(stub.srv.Listener.Addr().String())
	require.NoError(t, err)
	_, err = fmt.Sscan(portStr, &stub.port)
	require.NoError(t, err)

	return stub
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// setupGateContainer starts doorman in a container wired to a stub media
// server on the host, and returns the base URL.
func setupGateContainer(t *testing.T) (string, *mediaStub) {
	t.Helper()
	ctx := context.Background()

	stub := newMediaStub(t)

	req := testcontainers.ContainerRequest{
		Image:           testImageName,
		ExposedPorts:    []string{"8080/tcp"},
		HostAccessPorts: []int{stub.port},
		Env: map[string]string{
			"GATE_DATABASE_FILE":  "/doorman.db",
			"GATE_ISSUER":         "doorman-e2e",
			"GATE_ADMIN_USERNAME": adminUsername,
			"GATE_ADMIN_PASSWORD": adminPassword,
			"MEDIA_SERVER_URL":    fmt.Sprintf("http://%s:%d", testcontainers.HostInternal, stub.port),
			"MEDIA_SERVER_TOKEN":  mediaToken,
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
			// Increase rate limits for E2E tests to prevent test failures
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), stub
}

// setupGateContainerWithDefaultRateLimits starts doorman with DEFAULT rate
// limits. This is specifically for testing that rate limiting actually
// works. Most tests should use setupGateContainer() which has relaxed
// limits to prevent test failures.
func setupGateContainerWithDefaultRateLimits(t *testing.T) (string, *mediaStub) {
	t.Helper()
	ctx := context.Background()

	stub := newMediaStub(t)

	req := testcontainers.ContainerRequest{
		Image:           testImageName,
		ExposedPorts:    []string{"8080/tcp"},
		HostAccessPorts: []int{stub.port},
		Env: map[string]string{
			"GATE_DATABASE_FILE":  "/doorman.db",
			"GATE_ISSUER":         "doorman-e2e",
			"GATE_ADMIN_USERNAME": adminUsername,
			"GATE_ADMIN_PASSWORD": adminPassword,
			"MEDIA_SERVER_URL":    fmt.Sprintf("http://%s:%d", testcontainers.HostInternal, stub.port),
			"MEDIA_SERVER_TOKEN":  mediaToken,
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
			// NOTE: No rate limit overrides - using production defaults
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), stub
}

// loginAdmin logs the seeded root admin in.
func loginAdmin(t *testing.T, client *gatesdk.SDKClient) *gatesdk.Session {
	t.Helper()

	session, err := client.Login(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err)
	require.NotNil(t, session)
	return session
}

// registerViaAdminInvite mints an invite as the admin and registers a new
// user with it.
func registerViaAdminInvite(t *testing.T, client *gatesdk.SDKClient, admin *gatesdk.Session, username, password string) *gatesdk.Session {
	t.Helper()

	invite, err := admin.CreateInvite(t.Context())
	require.NoError(t, err)

	session, err := client.Register(t.Context(), username, password, invite.Code)
	require.NoError(t, err)
	return session
}

// assertAPIError checks that err is an APIError with the given status and
// code.
func assertAPIError(t *testing.T, err error, statusCode int, code string) {
	t.Helper()

	require.Error(t, err)
	apiErr, ok := err.(*gatesdk.APIError)
	require.True(t, ok, "expected *gatesdk.APIError, got %T: %v", err, err)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
