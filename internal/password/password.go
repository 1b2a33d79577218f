// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package password implements the credential verifier: bcrypt hashing and
// comparison, password strength validation, and secure random generation.
// Everything here is pure and stateless; the only tunable is the bcrypt
// cost factor.
package password

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used when none is configured.
	// At cost 12 a single hash takes tens of milliseconds; that price is
	// intentional — it is the primary defence against offline brute force
	// if the hash store ever leaks.
	DefaultCost = 12

	// MinLength is the minimum accepted password length.
	MinLength = 8

	// MaxLength caps input length. bcrypt only consumes the first 72
	// bytes, so anything longer silently truncates; rejecting instead
	// keeps the stored credential equal to what the user typed.
	MaxLength = 128
)

// commonPasswords is a small deny-list of passwords so frequent that no
// character-class rule saves them.
var commonPasswords = map[string]struct{}{
	"password":   {},
	"password1":  {},
	"password1!": {},
	"12345678":   {},
	"123456789":  {},
	"qwerty123":  {},
	"letmein123": {},
	"iloveyou1":  {},
	"admin12345": {},
	"welcome1":   {},
}

const specialRunes = `!@#$%^&*()-_=+[]{};:'",.<>/?\|~` + "`"

// Verifier hashes and compares passwords with a fixed bcrypt cost.
// The zero value is not usable; construct with [NewVerifier].
type Verifier struct {
	cost int
}

// NewVerifier constructs a Verifier with the given bcrypt cost.
// Costs outside bcrypt's supported range fall back to [DefaultCost].
func NewVerifier(cost int) *Verifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Verifier{cost: cost}
}

// Hash produces a salted bcrypt hash of password.
//
// Returns [ErrWeakPassword] for passwords shorter than [MinLength]; length
// is the only property enforced here — full strength rules are a UX concern
// handled by [ValidateStrength].
func (v *Verifier) Hash(password string) (string, error) {
	if len(password) < MinLength {
		return "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Verify compares password against a stored bcrypt hash.
//
// It never returns an error: any failure — mismatch, malformed hash,
// truncated input — yields false. A verification that cannot complete must
// read as "not valid", never as "valid".
func (v *Verifier) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash reports whether the stored hash was produced with a weaker
// cost than the verifier's current policy. Callers use it to trigger a lazy
// rehash on the next successful login. Malformed hashes report true so a
// broken record heals itself the next time its owner authenticates.
func (v *Verifier) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost < v.cost
}

// StrengthResult is the outcome of [ValidateStrength]: Valid is true only
// when Errors is empty.
type StrengthResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateStrength checks password against the full strength policy:
// length bounds, character-class coverage, and the common-password
// deny-list. It is pure and side-effect-free — a UX aid for registration
// forms, not a security boundary on its own.
func ValidateStrength(password string) StrengthResult {
	var errs []string

	if len(password) < MinLength {
		errs = append(errs, "password must be at least 8 characters long")
	}
	if len(password) > MaxLength {
		errs = append(errs, "password must be at most 128 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialRunes, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		errs = append(errs, "password must contain an uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "password must contain a lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain a digit")
	}
	if !hasSpecial {
		errs = append(errs, "password must contain a special character")
	}

	if _, common := commonPasswords[strings.ToLower(password)]; common {
		errs = append(errs, "password is too common")
	}

	return StrengthResult{Valid: len(errs) == 0, Errors: errs}
}

// Generate produces a cryptographically random password of the given length
// containing at least one character of every class required by
// [ValidateStrength]. Lengths below [MinLength] are rejected with
// [ErrWeakPassword].
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", ErrWeakPassword
	}
	if length > MaxLength {
		length = MaxLength
	}

	const (
		upper  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
		lower  = "abcdefghijkmnopqrstuvwxyz"
		digits = "23456789"
	)
	alphabet := upper + lower + digits + specialRunes

	buf := make([]byte, 0, length)

	// one guaranteed character per class, the rest from the full alphabet
	for _, set := range []string{upper, lower, digits, specialRunes} {
		c, err := randomRune(set)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for len(buf) < length {
		c, err := randomRune(alphabet)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	if err := shuffle(buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

func randomRune(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}

func shuffle(buf []byte) error {
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := n.Int64()
		buf[i], buf[j] = buf[j], buf[i]
	}
	return nil
}
