package projectmanager

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
	"gitlab.com/TitanInd/crowdfund-client/internal/notify"
	"gitlab.com/TitanInd/crowdfund-client/internal/resources/project"
	"gitlab.com/TitanInd/crowdfund-client/internal/session"
)

type Gateway interface {
	GetProjectCount(ctx context.Context) (uint64, error)
	GetProject(ctx context.Context, projectID uint64) (*project.Project, error)
	GetContribution(ctx context.Context, projectID uint64, account common.Address) (*big.Int, error)

	SubmitCreate(ctx context.Context, from common.Address, title, description string, goal *big.Int, durationDays *big.Int) (common.Hash, error)
	SubmitContribute(ctx context.Context, from common.Address, projectID uint64, amount *big.Int) (common.Hash, error)
	SubmitWithdraw(ctx context.Context, from common.Address, projectID uint64) (common.Hash, error)
	SubmitRefund(ctx context.Context, from common.Address, projectID uint64) (common.Hash, error)
}

type SessionProvider interface {
	Current() *session.Session
}

type Notifier interface {
	Push(level lib.AlertLevel, message string) notify.Alert
	Error(prefix string, err error) notify.Alert
}

type Refresher interface {
	Refresh(ctx context.Context) error
}
