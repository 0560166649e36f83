package projectmanager

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/TitanInd/crowdfund-client/internal/resources/project"
	"gitlab.com/TitanInd/crowdfund-client/internal/session"
)

type gatewayMock struct {
	Projects      []project.Project
	Contributions map[uint64]*big.Int
	Count         *uint64
	CountErr      error
	ProjectErr    error
	SubmitErr     error
	BeforeCount   func(ctx context.Context) error

	mutex             sync.Mutex
	contributionCalls int
	submits           []string
	lastAmount        *big.Int
	lastGoal          *big.Int
	lastFrom          common.Address
}

func (g *gatewayMock) GetProjectCount(ctx context.Context) (uint64, error) {
	if g.BeforeCount != nil {
		if err := g.BeforeCount(ctx); err != nil {
			return 0, err
		}
	}
	if g.CountErr != nil {
		return 0, g.CountErr
	}
	if g.Count != nil {
		return *g.Count, nil
	}
	return uint64(len(g.Projects)), nil
}

func (g *gatewayMock) GetProject(ctx context.Context, projectID uint64) (*project.Project, error) {
	if g.ProjectErr != nil {
		return nil, g.ProjectErr
	}
	p := g.Projects[projectID-1]
	return &p, nil
}

func (g *gatewayMock) GetContribution(ctx context.Context, projectID uint64, account common.Address) (*big.Int, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.contributionCalls++
	if v, ok := g.Contributions[projectID]; ok {
		return v, nil
	}
	return new(big.Int), nil
}

func (g *gatewayMock) record(name string, from common.Address) (common.Hash, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.submits = append(g.submits, name)
	g.lastFrom = from
	if g.SubmitErr != nil {
		return common.Hash{}, g.SubmitErr
	}
	return common.HexToHash("0x01"), nil
}

func (g *gatewayMock) SubmitCreate(ctx context.Context, from common.Address, title, description string, goal *big.Int, durationDays *big.Int) (common.Hash, error) {
	g.lastGoal = goal
	return g.record("create", from)
}

func (g *gatewayMock) SubmitContribute(ctx context.Context, from common.Address, projectID uint64, amount *big.Int) (common.Hash, error) {
	g.lastAmount = amount
	return g.record("contribute", from)
}

func (g *gatewayMock) SubmitWithdraw(ctx context.Context, from common.Address, projectID uint64) (common.Hash, error) {
	return g.record("withdraw", from)
}

func (g *gatewayMock) SubmitRefund(ctx context.Context, from common.Address, projectID uint64) (common.Hash, error) {
	return g.record("refund", from)
}

func (g *gatewayMock) Submits() []string {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return append([]string(nil), g.submits...)
}

type sessionsMock struct {
	s *session.Session
}

func (m *sessionsMock) Current() *session.Session {
	return m.s
}

type refresherMock struct {
	mutex  sync.Mutex
	called int
}

func (r *refresherMock) Refresh(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.called++
	return nil
}

func (r *refresherMock) CalledTimes() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.called
}
