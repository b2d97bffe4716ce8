// Copyright 2022 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apperrors defines the boundary error taxonomy: every callback this
// module invokes receives either a success payload or one of these codes,
// grouped into the four families the core distinguishes (Common, Signus,
// Anoncreds, Pool). Cryptographic verification failures are never part of
// this taxonomy — verify returns (false, nil), not an error.
package apperrors

import (
	"errors"
	"fmt"
)

// Family groups related error codes into the four domains the core
// distinguishes: common structural/IO/state faults, Signus (DID and crypto
// suite) faults, Anoncreds (proof) faults, and Pool (ledger transport)
// faults.
type Family string

const (
	FamilyCommon    Family = "Common"
	FamilySignus    Family = "Signus"
	FamilyAnoncreds Family = "Anoncreds"
	FamilyPool      Family = "Pool"
)

// Code is a stable integer identifying a boundary error condition. Values
// are illustrative, not wire-protocol constants; callers should match on the
// Code, not its numeric value.
type Code int

const (
	CommonInvalidParam3      Code = 100 + iota // a specific parameter failed validation
	CommonInvalidStructure                     // malformed JSON, Base58 or other structured input
	CommonInvalidState                         // an internal invariant was violated
	CommonIOError                              // the underlying substrate (wallet, pool) failed
)

const (
	WalletAlreadyExistsError Code = 200 + iota
	WalletUnknownTypeError
	WalletInvalidHandle
	WalletNotFoundError
)

const (
	SignusUnknownCrypto Code = 300 + iota
	SignusCryptoError
)

const (
	AnoncredsProofRejected Code = 400 + iota
)

const (
	PoolLedgerTimeout Code = 500 + iota
	PoolLedgerNotCreated
)

// Error is the concrete error type returned across every boundary call in
// this module. It carries the family/code pair callers switch on, a
// human-readable message, and (optionally) the lower-level cause.
type Error struct {
	Family  Family
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Family, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Family, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code, so callers can
// write errors.Is(err, apperrors.New(apperrors.FamilySignus,
// apperrors.SignusUnknownCrypto, "")).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// New constructs a boundary error with no wrapped cause.
func New(family Family, code Code, message string) *Error {
	return &Error{Family: family, Code: code, Message: message}
}

// Wrap constructs a boundary error that carries a lower-level cause.
func Wrap(family Family, code Code, message string, cause error) *Error {
	return &Error{Family: family, Code: code, Message: message, Cause: cause}
}

// InvalidStructure builds a CommonInvalidStructure error naming which input
// failed to parse or decode.
func InvalidStructure(what string, cause error) *Error {
	if cause == nil {
		return New(FamilyCommon, CommonInvalidStructure, what)
	}
	return Wrap(FamilyCommon, CommonInvalidStructure, what, cause)
}

// InvalidParam builds a CommonInvalidParam3 error for a specific,
// named parameter that failed validation.
func InvalidParam(what string) *Error {
	return New(FamilyCommon, CommonInvalidParam3, what)
}

// UnknownCrypto builds a SignusUnknownCrypto error for an unregistered
// crypto suite identifier.
func UnknownCrypto(suiteID string) *Error {
	return New(FamilySignus, SignusUnknownCrypto, fmt.Sprintf("unknown crypto type: %s", suiteID))
}

// CryptoError wraps a crypto-suite primitive fault (decode failure,
// authentication failure on decrypt) that isn't a verification "no".
func CryptoError(what string, cause error) *Error {
	return Wrap(FamilySignus, SignusCryptoError, what, cause)
}

// ProofRejected builds an AnoncredsProofRejected error. Note this is
// distinct from verify_proof returning (false, nil): it is reserved for the
// AnonCreds primitive itself faulting, not for a proof that simply fails to
// verify.
func ProofRejected(what string, cause error) *Error {
	return Wrap(FamilyAnoncreds, AnoncredsProofRejected, what, cause)
}

// PoolTimeout builds a PoolLedgerTimeout error for a waiter that was
// cancelled by the timeout sweep before its acknowledgement arrived.
func PoolTimeout(what string) *Error {
	return New(FamilyPool, PoolLedgerTimeout, what)
}

// IOError wraps a substrate I/O fault (wallet storage, pool transport).
func IOError(what string, cause error) *Error {
	return Wrap(FamilyCommon, CommonIOError, what, cause)
}
