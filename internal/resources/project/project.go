package project

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Project is a crowdfunding campaign as returned by the contract's getProject.
// IDs are 1-based and dense up to projectCount.
type Project struct {
	ID          uint64
	Owner       common.Address
	Title       string
	Description string
	Goal        *big.Int // wei, fixed at creation
	Deadline    uint64   // unix seconds
	FundsRaised *big.Int // wei, zeroed by the contract on withdrawal
	IsCompleted bool
}

func (p *Project) DeadlineTime() time.Time {
	return time.Unix(int64(p.Deadline), 0)
}

// orZero keeps nil amounts from leaking into comparisons
func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
