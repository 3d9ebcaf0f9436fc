package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finlight/dashboard-be/internal/models"
)

const (
	testDuration  = 900 * time.Second
	testThreshold = 120 * time.Second
	testMaxAge    = 30 * 24 * time.Hour
)

func testPolicy() *SessionPolicy {
	return NewSessionPolicy(testDuration, testThreshold, testMaxAge)
}

func claimsAt(start time.Time) SessionClaims {
	return SessionClaims{
		UserID:       "u1",
		Role:         models.RoleUser,
		SessionStart: start,
		IssuedAt:     start,
		ExpiresAt:    start.Add(testDuration),
	}
}

func TestEvaluateNotDue(t *testing.T) {
	policy := testPolicy()
	start := time.Unix(1_700_000_000, 0)

	decision := policy.Evaluate(claimsAt(start), start.Add(100*time.Second))
	require.Equal(t, SessionFresh, decision.Outcome)
	require.Equal(t, 800*time.Second, decision.TimeLeft)
}

func TestEvaluateRotatesInsideRefreshWindow(t *testing.T) {
	policy := testPolicy()
	start := time.Unix(1_700_000_000, 0)
	now := start.Add(850 * time.Second) // 50s left, under the 120s threshold

	decision := policy.Evaluate(claimsAt(start), now)
	require.Equal(t, SessionRotate, decision.Outcome)
	require.Equal(t, "u1", decision.Claims.UserID)
	require.Equal(t, models.RoleUser, decision.Claims.Role)
	require.True(t, decision.Claims.SessionStart.Equal(start), "rotation must preserve sessionStart")
	require.True(t, decision.Claims.ExpiresAt.Equal(now.Add(testDuration)))
	require.True(t, decision.Claims.IssuedAt.Equal(now))
}

func TestEvaluateExpiredPastExp(t *testing.T) {
	policy := testPolicy()
	start := time.Unix(1_700_000_000, 0)

	decision := policy.Evaluate(claimsAt(start), start.Add(testDuration+time.Second))
	require.Equal(t, SessionExpired, decision.Outcome)
	require.Equal(t, testMaxAge, decision.Max)
}

func TestEvaluateAbsoluteCapWinsOverUnexpiredExp(t *testing.T) {
	policy := testPolicy()
	now := time.Unix(1_700_000_000, 0)

	// A rotated session whose exp is still in the future, but whose origin
	// is past the absolute lifetime.
	claims := SessionClaims{
		UserID:       "u1",
		Role:         models.RoleUser,
		SessionStart: now.Add(-testMaxAge),
		IssuedAt:     now.Add(-time.Minute),
		ExpiresAt:    now.Add(100 * time.Second),
	}

	decision := policy.Evaluate(claims, now)
	require.Equal(t, SessionExpired, decision.Outcome)
	require.Equal(t, testMaxAge, decision.Age)
}

func TestEvaluateRotationNeverExceedsAbsoluteCap(t *testing.T) {
	policy := testPolicy()
	now := time.Unix(1_700_000_000, 0)
	start := now.Add(-(testMaxAge - 60*time.Second))

	claims := SessionClaims{
		UserID:       "u1",
		Role:         models.RoleAdmin,
		SessionStart: start,
		IssuedAt:     now.Add(-time.Minute),
		ExpiresAt:    now.Add(60 * time.Second), // under threshold, rotation due
	}

	decision := policy.Evaluate(claims, now)
	require.Equal(t, SessionRotate, decision.Outcome)
	require.True(t, decision.Claims.ExpiresAt.Equal(start.Add(testMaxAge)),
		"rotated exp %v must be capped at sessionStart+max %v", decision.Claims.ExpiresAt, start.Add(testMaxAge))
}

func TestEvaluateRotationCapProperty(t *testing.T) {
	policy := testPolicy()
	base := time.Unix(1_700_000_000, 0)

	// Sweep session ages across the lifetime; no rotation may ever place
	// exp past sessionStart + max.
	for age := time.Duration(0); age < testMaxAge; age += 6 * time.Hour {
		start := base.Add(-age)
		claims := SessionClaims{
			UserID:       "u1",
			Role:         models.RoleUser,
			SessionStart: start,
			IssuedAt:     base.Add(-time.Minute),
			ExpiresAt:    base.Add(30 * time.Second),
		}
		decision := policy.Evaluate(claims, base)
		if decision.Outcome != SessionRotate {
			continue
		}
		if decision.Claims.ExpiresAt.After(start.Add(testMaxAge)) {
			t.Fatalf("age %v: rotated exp %v exceeds absolute cap", age, decision.Claims.ExpiresAt)
		}
	}
}
