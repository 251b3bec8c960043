// Package metrics defines and registers all custom Prometheus metrics for
// the identity service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/veridian/identity-service/internal/core/domain"
)

const namespace = "identity"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or a short failure reason
//     (e.g. "duplicate_username", "compromised_password")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts issued tokens.
// Label:
//   - type: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by token type.",
	},
	[]string{"type"},
)

// TokenValidationFailuresTotal counts rejected tokens.
// Label:
//   - reason: "expired", "invalid_signature", "wrong_type", "malformed", "not_yet_valid"
var TokenValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validation_failures_total",
		Help:      "Total number of token validations that failed, by reason.",
	},
	[]string{"reason"},
)

// ProfilesCreatedTotal counts profiles materialized by the post-registration
// notifier.
var ProfilesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profiles_created_total",
		Help:      "Total number of profiles created from UserCreated events.",
	},
)

// TokenFailureReason condenses a token validation error into the label used
// by TokenValidationFailuresTotal.
func TokenFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrWrongTokenType):
		return "wrong_type"
	default:
		return "malformed"
	}
}
