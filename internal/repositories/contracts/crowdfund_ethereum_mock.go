package contracts

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthClientMock answers view calls by method name. Handlers receive the unpacked
// inputs and return the values to be ABI-encoded as the call output.
type EthClientMock struct {
	Handlers             map[string]func(args []interface{}) ([]interface{}, error)
	TransactionReceiptFn func(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	CallContractCalledTimes int
	abi                     *abi.ABI
}

func NewEthClientMock() *EthClientMock {
	cfABI, err := CrowdfundMetaData.GetAbi()
	if err != nil {
		panic(err)
	}
	return &EthClientMock{
		Handlers: make(map[string]func(args []interface{}) ([]interface{}, error)),
		abi:      cfABI,
	}
}

func (m *EthClientMock) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (m *EthClientMock) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	m.CallContractCalledTimes++

	for name, method := range m.abi.Methods {
		if !bytes.Equal(call.Data[:4], method.ID) {
			continue
		}
		handler, ok := m.Handlers[name]
		if !ok {
			return nil, fmt.Errorf("no handler for %s", name)
		}
		args, err := method.Inputs.Unpack(call.Data[4:])
		if err != nil {
			return nil, err
		}
		values, err := handler(args)
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(values...)
	}
	return nil, fmt.Errorf("unknown selector %x", call.Data[:4])
}

func (m *EthClientMock) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if m.TransactionReceiptFn == nil {
		return &types.Receipt{TxHash: txHash, Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}, nil
	}
	return m.TransactionReceiptFn(ctx, txHash)
}

var _ EthereumClient = new(EthClientMock)
