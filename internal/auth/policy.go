package auth

import "time"

// RotationOutcome is the state the policy assigns to a session on a request.
type RotationOutcome int

const (
	// SessionFresh means the token has enough life left; nothing to do.
	SessionFresh RotationOutcome = iota
	// SessionRotate means the token is inside the refresh window and a
	// replacement should be signed and set.
	SessionRotate
	// SessionExpired means exp has passed or the absolute lifetime cap was
	// hit; the session must be discarded.
	SessionExpired
)

// RotationDecision is the result of evaluating claims against the policy.
// Claims is populated only for SessionRotate; Age/Max for SessionExpired;
// TimeLeft for SessionFresh.
type RotationDecision struct {
	Outcome  RotationOutcome
	Claims   SessionClaims
	Age      time.Duration
	Max      time.Duration
	TimeLeft time.Duration
}

// SessionPolicy decides, from wall-clock comparisons alone, whether a session
// is kept, rotated, or expired. There are no background timers; every
// transition happens on a request.
type SessionPolicy struct {
	duration         time.Duration
	refreshThreshold time.Duration
	maxAbsolute      time.Duration
}

// NewSessionPolicy builds a policy from the configured durations.
func NewSessionPolicy(duration, refreshThreshold, maxAbsolute time.Duration) *SessionPolicy {
	return &SessionPolicy{
		duration:         duration,
		refreshThreshold: refreshThreshold,
		maxAbsolute:      maxAbsolute,
	}
}

// Evaluate applies the rotation state machine to claims at the given instant.
// The absolute cap wins over an unexpired exp, and a rotated session never
// extends past sessionStart + maxAbsolute regardless of activity.
func (p *SessionPolicy) Evaluate(claims SessionClaims, now time.Time) RotationDecision {
	age := now.Sub(claims.SessionStart)
	if now.After(claims.ExpiresAt) || age >= p.maxAbsolute {
		return RotationDecision{Outcome: SessionExpired, Age: age, Max: p.maxAbsolute}
	}

	timeLeft := claims.ExpiresAt.Sub(now)
	if timeLeft < p.refreshThreshold {
		expiresAt := now.Add(p.duration)
		if limit := claims.SessionStart.Add(p.maxAbsolute); expiresAt.After(limit) {
			expiresAt = limit
		}
		return RotationDecision{
			Outcome: SessionRotate,
			Claims: SessionClaims{
				UserID:       claims.UserID,
				Role:         claims.Role,
				SessionStart: claims.SessionStart,
				IssuedAt:     now,
				ExpiresAt:    expiresAt,
			},
		}
	}

	return RotationDecision{Outcome: SessionFresh, TimeLeft: timeLeft}
}
