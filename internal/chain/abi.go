package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// DefaultFitnessABI is the interface of the deployed fitness contract.
// Deployments pass this (or a superset) through FITNESS_CONTRACT_ABI.
const DefaultFitnessABI = `[
	{"type":"function","name":"registerUser","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"}],"outputs":[]},
	{"type":"function","name":"claimTokens","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"}],"outputs":[]},
	{"type":"function","name":"getUserData","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"fitTokens","type":"uint256"},{"name":"challengeCompleted","type":"bool"}]}
]`

// Methods the relay will build sponsored transactions for. Anything else
// is rejected before encoding, regardless of what the configured ABI
// happens to contain.
const (
	MethodRegisterUser = "registerUser"
	MethodClaimTokens  = "claimTokens"
)

var sponsoredMethods = map[string]bool{
	MethodRegisterUser: true,
	MethodClaimTokens:  true,
}

// ErrUnknownMethod is returned for methods outside the sponsored allow-list.
var ErrUnknownMethod = errors.New("unknown contract method")

// Codec encodes calls against the fitness contract ABI.
type Codec struct {
	abi abi.ABI
}

// NewCodec parses the ABI JSON. An ABI missing either sponsored method is
// a configuration error and fails here rather than on the first request.
func NewCodec(abiJSON string) (*Codec, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parse contract ABI")
	}
	for name := range sponsoredMethods {
		if _, ok := parsed.Methods[name]; !ok {
			return nil, errors.Errorf("contract ABI is missing method %q", name)
		}
	}
	return &Codec{abi: parsed}, nil
}

// EncodeCall returns the calldata (4-byte selector plus packed arguments)
// for a sponsored method.
func (c *Codec) EncodeCall(method string, params ...interface{}) ([]byte, error) {
	if !sponsoredMethods[method] {
		return nil, errors.Wrapf(ErrUnknownMethod, "%q", method)
	}
	data, err := c.abi.Pack(method, params...)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s call", method)
	}
	return data, nil
}
