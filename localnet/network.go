package localnet

import (
	"path/filepath"

	"github.com/evergreen-ci/utility"
	"github.com/fastnear/benchrunner/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Network is the handle for a started local test network. It is returned by
// the orchestration step and threaded into the benchmark step rather than
// relying on ambient filesystem state.
type Network struct {
	// Home is the local state directory the network runs out of.
	Home string
	// RPCAddr is the HTTP endpoint of the first node.
	RPCAddr string
	// KeyFile, when set, overrides the conventional validator key path.
	KeyFile string
}

// ValidatorKey is the credential the benchmark scenario uses to fund test
// transactions.
type ValidatorKey struct {
	AccountID string `yaml:"account_id"`
	PublicKey string `yaml:"public_key"`
}

// ValidatorKeyPath returns the path of the first node's validator key file.
func (n *Network) ValidatorKeyPath() string {
	if n.KeyFile != "" {
		return n.KeyFile
	}
	return filepath.Join(n.Home, "localnet", "node0", "validator_key.json")
}

// ResolveFundingKey locates and sanity-checks the validator key file,
// returning its path for the benchmark step. A missing or malformed key file
// is fatal to the cycle.
func (n *Network) ResolveFundingKey() (string, error) {
	path := n.ValidatorKeyPath()
	if !utility.FileExists(path) {
		return "", errors.Errorf("validator key file %s does not exist", path)
	}

	key := &ValidatorKey{}
	if err := util.ReadFileYAML(path, key); err != nil {
		return "", errors.Wrap(err, "problem reading validator key")
	}
	if key.AccountID == "" {
		return "", errors.Errorf("validator key file %s has no account id", path)
	}

	grip.Info(message.Fields{
		"message": "resolved funding key",
		"account": key.AccountID,
		"path":    path,
	})

	return path, nil
}
