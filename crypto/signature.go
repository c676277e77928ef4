// Copyright 2026 The Chainexec Authors
// This file is part of Chainexec.
//
// Chainexec is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chainexec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Chainexec. If not, see <http://www.gnu.org/licenses/>.

package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/chainexec/chainexec/common"
)

// Ecrecover returns the uncompressed public key that created the given
// signature. The signature must be in [R || S || V] format where V is 0 or 1.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := sigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

func sigToPub(hash, sig []byte) (*secp256k1.PublicKey, error) {
	if len(hash) != DigestLength {
		return nil, fmt.Errorf("hash is required to be exactly %d bytes (%d)", DigestLength, len(hash))
	}
	if len(sig) != SignatureLength {
		return nil, errors.New("invalid signature length")
	}
	// Convert to secp256k1 input format where the recovery id leads, with
	// 27 added as per the compact signature convention.
	btcsig := make([]byte, SignatureLength)
	btcsig[0] = sig[RecoveryIDOffset] + 27
	copy(btcsig[1:], sig)

	pub, _, err := ecdsa.RecoverCompact(btcsig, hash)
	return pub, err
}

// Sign calculates an ECDSA signature over the given digest.
//
// The produced signature is in the [R || S || V] format where V is 0 or 1, and
// its s value is always in the lower half of the curve order.
func Sign(digestHash []byte, prv *secp256k1.PrivateKey) ([]byte, error) {
	if len(digestHash) != DigestLength {
		return nil, fmt.Errorf("hash is required to be exactly %d bytes (%d)", DigestLength, len(digestHash))
	}
	sig := ecdsa.SignCompact(prv, digestHash, false)
	// Convert to Ethereum signature format with the recovery id trailing.
	v := sig[0] - 27
	copy(sig, sig[1:])
	sig[RecoveryIDOffset] = v
	return sig, nil
}

// GenerateKey generates a new secp256k1 private key.
func GenerateKey() (*secp256k1.PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// HexToECDSA parses a secp256k1 private key from its hex representation.
func HexToECDSA(hexkey string) (*secp256k1.PrivateKey, error) {
	b := common.FromHex(hexkey)
	if len(b) != 32 {
		return nil, errors.New("invalid length, need 256 bits")
	}
	var overflow bool
	var key secp256k1.ModNScalar
	if overflow = key.SetByteSlice(b); overflow || key.IsZero() {
		return nil, errors.New("invalid private key")
	}
	return secp256k1.NewPrivateKey(&key), nil
}

// UnmarshalPubkey converts an uncompressed 65 byte public key to a secp256k1
// public key.
func UnmarshalPubkey(pub []byte) (*secp256k1.PublicKey, error) {
	if len(pub) != 65 || pub[0] != 4 {
		return nil, errInvalidPubkey
	}
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, errInvalidPubkey
	}
	return key, nil
}

// PubkeyToAddress derives the account address from a public key: the last 20
// bytes of the Keccak256 hash of the uncompressed key without its format
// prefix.
func PubkeyToAddress(pub *secp256k1.PublicKey) common.Address {
	raw := pub.SerializeUncompressed()
	return common.BytesToAddress(Keccak256(raw[1:])[12:])
}
