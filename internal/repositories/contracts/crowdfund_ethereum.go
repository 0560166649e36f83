package contracts

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
	"gitlab.com/TitanInd/crowdfund-client/internal/repositories/wallet"
	"gitlab.com/TitanInd/crowdfund-client/internal/resources/project"
)

const (
	defaultReceiptPollInterval = 2 * time.Second

	// MaxProjectCount bounds projectCount so a corrupt value cannot size the refresh
	MaxProjectCount = math.MaxInt32
)

var (
	ErrTxReverted  = errors.New("transaction reverted")
	ErrInvalidUint = errors.New("value does not fit uint64")
)

type EthereumClient interface {
	bind.ContractCaller
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type TxSender interface {
	SendTransaction(ctx context.Context, args wallet.TxArgs) (common.Hash, error)
}

// CrowdfundEthereum reads the crowdfunding contract through the node and submits
// state-mutating calls through the wallet. Failures are returned once, never retried.
type CrowdfundEthereum struct {
	// config
	contractAddr        common.Address
	waitMined           bool
	receiptPollInterval time.Duration

	// state
	abi      *abi.ABI
	contract *bind.BoundContract

	// deps
	client EthereumClient
	sender TxSender
	log    interfaces.ILogger
}

func NewCrowdfundEthereum(contractAddr common.Address, client EthereumClient, sender TxSender, log interfaces.ILogger) *CrowdfundEthereum {
	cfABI, err := CrowdfundMetaData.GetAbi()
	if err != nil {
		panic("invalid crowdfund ABI: " + err.Error())
	}

	return &CrowdfundEthereum{
		contractAddr:        contractAddr,
		waitMined:           true,
		receiptPollInterval: defaultReceiptPollInterval,
		abi:                 cfABI,
		// writes go through the wallet, the bound contract is only used for view calls
		contract: bind.NewBoundContract(contractAddr, *cfABI, client, nil, nil),
		client:   client,
		sender:   sender,
		log:      log,
	}
}

// SetWaitMined controls whether writes block until the transaction receipt is available
func (g *CrowdfundEthereum) SetWaitMined(waitMined bool) {
	g.waitMined = waitMined
}

func (g *CrowdfundEthereum) SetReceiptPollInterval(interval time.Duration) {
	g.receiptPollInterval = interval
}

func (g *CrowdfundEthereum) ContractAddress() common.Address {
	return g.contractAddr
}

func (g *CrowdfundEthereum) GetProjectCount(ctx context.Context) (uint64, error) {
	out, err := g.call(ctx, MethodProjectCount)
	if err != nil {
		return 0, err
	}
	count := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !count.IsUint64() || count.Uint64() > MaxProjectCount {
		return 0, lib.NewRemoteCallError(MethodProjectCount, ErrInvalidUint)
	}
	return count.Uint64(), nil
}

func (g *CrowdfundEthereum) GetProject(ctx context.Context, projectID uint64) (*project.Project, error) {
	out, err := g.call(ctx, MethodGetProject, new(big.Int).SetUint64(projectID))
	if err != nil {
		return nil, err
	}

	deadline := *abi.ConvertType(out[4], new(*big.Int)).(**big.Int)

	return &project.Project{
		ID:          projectID,
		Owner:       *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		Title:       *abi.ConvertType(out[1], new(string)).(*string),
		Description: *abi.ConvertType(out[2], new(string)).(*string),
		Goal:        *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		Deadline:    clampUint64(deadline),
		FundsRaised: *abi.ConvertType(out[5], new(*big.Int)).(**big.Int),
		IsCompleted: *abi.ConvertType(out[6], new(bool)).(*bool),
	}, nil
}

func (g *CrowdfundEthereum) GetContribution(ctx context.Context, projectID uint64, account common.Address) (*big.Int, error) {
	out, err := g.call(ctx, MethodContributions, new(big.Int).SetUint64(projectID), account)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (g *CrowdfundEthereum) GetPlatformOwner(ctx context.Context) (common.Address, error) {
	out, err := g.call(ctx, MethodPlatformOwner)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (g *CrowdfundEthereum) GetActiveProjects(ctx context.Context) ([]uint64, error) {
	out, err := g.call(ctx, MethodGetActiveProjects)
	if err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)

	ids := make([]uint64, len(raw))
	for i, id := range raw {
		if !id.IsUint64() {
			return nil, lib.NewRemoteCallError(MethodGetActiveProjects, ErrInvalidUint)
		}
		ids[i] = id.Uint64()
	}
	return ids, nil
}

func (g *CrowdfundEthereum) SubmitCreate(ctx context.Context, from common.Address, title, description string, goal *big.Int, durationDays *big.Int) (common.Hash, error) {
	return g.transact(ctx, from, nil, MethodCreateProject, title, description, goal, durationDays)
}

func (g *CrowdfundEthereum) SubmitContribute(ctx context.Context, from common.Address, projectID uint64, amount *big.Int) (common.Hash, error) {
	return g.transact(ctx, from, amount, MethodContribute, new(big.Int).SetUint64(projectID))
}

func (g *CrowdfundEthereum) SubmitWithdraw(ctx context.Context, from common.Address, projectID uint64) (common.Hash, error) {
	return g.transact(ctx, from, nil, MethodWithdrawFunds, new(big.Int).SetUint64(projectID))
}

func (g *CrowdfundEthereum) SubmitRefund(ctx context.Context, from common.Address, projectID uint64) (common.Hash, error) {
	return g.transact(ctx, from, nil, MethodRefund, new(big.Int).SetUint64(projectID))
}

func (g *CrowdfundEthereum) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...)
	if err != nil {
		return nil, lib.NewRemoteCallError(method, decodeRevert(err))
	}
	if len(out) == 0 {
		return nil, lib.NewRemoteCallError(method, fmt.Errorf("empty response"))
	}
	return out, nil
}

func (g *CrowdfundEthereum) transact(ctx context.Context, from common.Address, value *big.Int, method string, params ...interface{}) (common.Hash, error) {
	data, err := g.abi.Pack(method, params...)
	if err != nil {
		return common.Hash{}, lib.NewRemoteCallError(method, err)
	}

	to := g.contractAddr
	args := wallet.TxArgs{
		From: from,
		To:   &to,
		Data: data,
	}
	if value != nil && value.Sign() > 0 {
		args.Value = (*hexutil.Big)(value)
	}

	txHash, err := g.sender.SendTransaction(ctx, args)
	if err != nil {
		if wallet.IsErrorCode(err, wallet.ErrCodeUserRejected) {
			return common.Hash{}, lib.NewWalletError("User denied transaction signature", err)
		}
		return common.Hash{}, lib.NewRemoteCallError(method, decodeRevert(err))
	}
	g.log.Infof("%s submitted, tx %s", method, txHash.Hex())

	if !g.waitMined {
		return txHash, nil
	}

	receipt, err := g.waitReceipt(ctx, txHash)
	if err != nil {
		return txHash, lib.NewRemoteCallError(method, err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return txHash, lib.NewRemoteCallError(method, ErrTxReverted)
	}
	g.log.Debugf("%s mined in block %s, tx %s", method, receipt.BlockNumber, txHash.Hex())

	return txHash, nil
}

// waitReceipt polls for the receipt like bind.WaitMined, the wallet only hands back the hash
func (g *CrowdfundEthereum) waitReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	for {
		receipt, err := g.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.receiptPollInterval):
		}
	}
}

func clampUint64(v *big.Int) uint64 {
	if v == nil || v.Sign() < 0 {
		return 0
	}
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}
