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

package wallet

import "golang.org/x/crypto/bcrypt"

// HashPassphrase returns a bcrypt hash of passphrase, suitable for saving
// alongside a FileStore so a later open can detect a wrong passphrase
// before attempting to decrypt anything.
func HashPassphrase(passphrase string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassphrase reports whether passphrase matches a hash produced by
// HashPassphrase, returning a non-nil error on mismatch.
func CheckPassphrase(passphrase, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase))
}
