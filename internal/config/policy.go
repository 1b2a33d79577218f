// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// FailureAction is what a component does when a backing service cannot be
// consulted.
type FailureAction int

const (
	// FailOpen permits the operation despite the missing backend.
	FailOpen FailureAction = iota
	// FailClosed denies the operation when the backend cannot answer.
	FailClosed
)

// FailurePolicy decides behaviour when a backing service is absent or
// failing. It is resolved once from the environment and consumed uniformly
// by the rate limiter and the session-validity check, so no call site
// carries its own environment conditional that could drift fail-open in
// production.
type FailurePolicy struct {
	// OnUnconfigured applies when a backend was never configured
	// (missing endpoint, token, or DSN).
	OnUnconfigured FailureAction

	// OnError applies when a configured backend returns an error.
	OnError FailureAction
}

// ResolveFailurePolicy maps the environment to its failure policy:
// development fails open so missing local infrastructure never blocks work;
// production fails closed because a limiter or session check that silently
// allows on failure is equivalent to not having one.
func ResolveFailurePolicy(env Environment) FailurePolicy {
	if env.IsProduction() {
		return FailurePolicy{OnUnconfigured: FailClosed, OnError: FailClosed}
	}
	return FailurePolicy{OnUnconfigured: FailOpen, OnError: FailOpen}
}
