package project

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Status uint8

const (
	StatusActive Status = iota
	StatusExpired
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusExpired:
		return "expired"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DisplayState is derived on every refresh from the project as fetched, it is never stored
type DisplayState struct {
	Project
	Status           Status
	RaisedForDisplay *big.Int
	UserContribution *big.Int
	IsOwner          bool

	CanContribute bool
	CanRefund     bool
	CanWithdraw   bool
}

// Badge is the label shown on the project card, empty for active projects
func (s DisplayState) Badge() string {
	switch s.Status {
	case StatusCompleted:
		return "Completed"
	case StatusExpired:
		return "Expired"
	default:
		return ""
	}
}

// Reconcile derives the display status and the actions offered to account at the instant now.
// account is nil when no wallet is connected. userContribution is the amount
// account has put into the project, nil is treated as zero.
func Reconcile(p Project, now time.Time, account *common.Address, userContribution *big.Int) DisplayState {
	goal := orZero(p.Goal)
	raised := orZero(p.FundsRaised)
	contribution := orZero(userContribution)

	nowUnix := now.Unix()
	isExpired := nowUnix >= 0 && uint64(nowUnix) > p.Deadline
	isOwner := account != nil && *account == p.Owner
	// only meaningful once completed, the contract zeroes fundsRaised on withdrawal
	fundsWithdrawn := raised.Sign() == 0

	// a completed project may have been withdrawn already, show the goal it reached
	raisedForDisplay := raised
	if p.IsCompleted {
		raisedForDisplay = goal
	}

	status := StatusActive
	switch {
	case p.IsCompleted:
		status = StatusCompleted
	case isExpired:
		status = StatusExpired
	}

	p.Goal = new(big.Int).Set(goal)
	p.FundsRaised = new(big.Int).Set(raised)

	return DisplayState{
		Project:          p,
		Status:           status,
		RaisedForDisplay: new(big.Int).Set(raisedForDisplay),
		UserContribution: new(big.Int).Set(contribution),
		IsOwner:          isOwner,
		CanContribute:    !p.IsCompleted && !isExpired,
		CanRefund:        !p.IsCompleted && isExpired && contribution.Sign() > 0,
		CanWithdraw:      p.IsCompleted && isOwner && !fundsWithdrawn,
	}
}
