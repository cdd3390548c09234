package gate_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies that the login endpoint is rate
// limited. Login has strict limits (5 req/min) to slow brute force.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, _ := setupGateContainerWithDefaultRateLimits(t)

	client := gatesdk.NewSDKClient(baseURL)
	ctx := context.Background()

	// Make requests until we hit the rate limit. The first 5 should fail
	// with an authentication error, not a rate limit.
	var lastErr error
	for i := range 6 {
		_, err := client.Login(ctx, "nobody", "wrongpass")
		require.Error(t, err)
		if i < 5 {
			assertAPIError(t, err, http.StatusUnauthorized, gatesdk.ErrorCodeInvalidCredentials)
		} else {
			lastErr = err
		}
	}

	apiErr, ok := lastErr.(*gatesdk.APIError)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode, "should be rate limited after 5 requests")
}

// TestRateLimitInviteLookup verifies the unauthenticated invite lookup is
// rate limited against code enumeration.
func TestRateLimitInviteLookup(t *testing.T) {
	baseURL, _ := setupGateContainerWithDefaultRateLimits(t)

	client := gatesdk.NewSDKClient(baseURL)
	ctx := context.Background()

	var lastErr error
	for i := range 6 {
		_, err := client.InviteByCode(ctx, "GUESS001")
		require.Error(t, err)
		if i < 5 {
			assertAPIError(t, err, http.StatusNotFound, gatesdk.ErrorCodeNotFound)
		} else {
			lastErr = err
		}
	}

	apiErr, ok := lastErr.(*gatesdk.APIError)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode, "should be rate limited after 5 lookups")
}
