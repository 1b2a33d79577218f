package password

import "errors"

// ErrWeakPassword is returned by [Verifier.Hash] and [Generate] when the
// password (or requested length) is below the minimum length. Callers
// should surface the strength rules from [ValidateStrength] instead of
// this error's text.
var ErrWeakPassword = errors.New("password is too weak")
