// Package wallet validates externally supplied wallet addresses and
// verifies EIP-191 personal-sign signatures. Addresses are never stored;
// they exist only for the duration of one relay request.
package wallet

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// IsValidAddress reports whether s is a syntactically valid 20-byte EVM
// address, checksummed or lowercase.
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// VerifyPersonalSignature checks that signature was produced by signing
// message (EIP-191 personal_sign) with the key behind expected. The hex
// signature may carry a 0x prefix and either 0/1 or 27/28 recovery ids.
// Any malformed signature is reported as a verification failure, not an
// internal error, matching how wallets surface bad signatures.
func VerifyPersonalSignature(message, signature string, expected common.Address) bool {
	recovered, err := RecoverPersonalSigner(message, signature)
	if err != nil {
		return false
	}
	return strings.EqualFold(recovered.Hex(), expected.Hex())
}

// RecoverPersonalSigner returns the address that signed message under the
// EIP-191 personal-sign scheme.
func RecoverPersonalSigner(message, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(ensureHexPrefix(signature))
	if err != nil {
		return common.Address{}, errors.Wrap(err, "decode signature")
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, errors.Errorf("invalid signature length %d", len(sig))
	}

	// Wallets return V as 27/28; SigToPub expects 0/1.
	local := make([]byte, crypto.SignatureLength)
	copy(local, sig)
	if local[crypto.RecoveryIDOffset] >= 27 {
		local[crypto.RecoveryIDOffset] -= 27
	}

	hash := accounts.TextHash([]byte(message))
	pub, err := crypto.SigToPub(hash, local)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "signature recovery failed")
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func ensureHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}
