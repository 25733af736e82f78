// Package hashid derives stable record identifiers and password digests from
// strings using a rolling checksum with 32-bit signed overflow semantics.
//
// This is deliberately not a cryptographic primitive: ids must stay
// compatible with records written by earlier clients, and the scheme is only
// used for deterministic key generation and equality checks. Two distinct
// inputs that hash identically are indistinguishable to the rest of the
// system; the collision risk is accepted and undetected.
package hashid

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Sum computes the rolling hash of s: for every UTF-16 code unit c,
// h = c + ((h << 5) - h), wrapping at the 32-bit signed boundary.
// Iterating code units rather than runes keeps the result identical for
// inputs outside the basic multilingual plane regardless of encoding.
func Sum(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = int32(c) + ((h << 5) - h)
	}
	return h
}

// DeriveID returns the stable record key for a login name: the decimal form
// of Sum over the lowercased name. Case variations of the same name always
// map to the same id.
func DeriveID(loginName string) string {
	return strconv.FormatInt(int64(Sum(strings.ToLower(loginName))), 10)
}

// Digest returns the stored/verified credential form of a raw password.
// No salting, no iteration: a checksum, not a password hash.
func Digest(password string) string {
	return strconv.FormatInt(int64(Sum(password)), 10)
}
