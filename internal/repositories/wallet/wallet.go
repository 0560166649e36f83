package wallet

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
)

const (
	// ErrCodeMethodNotFound is returned by providers that have no eth_requestAccounts
	ErrCodeMethodNotFound = -32601
	// ErrCodeUserRejected is the EIP-1193 code for a request the user declined
	ErrCodeUserRejected = 4001
)

type RPCClient interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
	Close()
}

// TxArgs are the eth_sendTransaction parameters, the wallet fills gas, fees and nonce
type TxArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Data  hexutil.Bytes   `json:"data"`
}

// Wallet talks to an external JSON-RPC wallet that holds the user's keys and authorizes transactions
type Wallet struct {
	client RPCClient
	log    interfaces.ILogger
}

func DialContext(ctx context.Context, url string, log interfaces.ILogger) (*Wallet, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewWallet(client, log), nil
}

func NewWallet(client RPCClient, log interfaces.ILogger) *Wallet {
	return &Wallet{
		client: client,
		log:    log,
	}
}

// RequestAccounts asks the wallet to expose its accounts, prompting the user if needed
func (w *Wallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	err := w.client.CallContext(ctx, &accounts, "eth_requestAccounts")
	if IsErrorCode(err, ErrCodeMethodNotFound) {
		w.log.Debugf("eth_requestAccounts is not supported, falling back to eth_accounts")
		return w.Accounts(ctx)
	}
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Accounts returns the currently exposed accounts without prompting
func (w *Wallet) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	err := w.client.CallContext(ctx, &accounts, "eth_accounts")
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (w *Wallet) SendTransaction(ctx context.Context, args TxArgs) (common.Hash, error) {
	var hash common.Hash
	err := w.client.CallContext(ctx, &hash, "eth_sendTransaction", args)
	if err != nil {
		return common.Hash{}, err
	}
	w.log.Debugf("transaction submitted %s from %s", hash.Hex(), args.From.Hex())
	return hash, nil
}

func (w *Wallet) Close() {
	w.client.Close()
}

func IsErrorCode(err error, code int) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == code
}
