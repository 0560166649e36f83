package project

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	t0      = time.Unix(1_700_000_000, 0)
	owner   = common.HexToAddress("0xd5fe7E6eB04450095a078A6E31610F2D7617C205")
	backer  = common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	noMoney = big.NewInt(0)
)

func newTestProject() Project {
	return Project{
		ID:          1,
		Owner:       owner,
		Title:       "Solar roof",
		Description: "Panels for the community hall",
		Goal:        big.NewInt(1000),
		Deadline:    uint64(t0.Unix() + 86400),
		FundsRaised: big.NewInt(0),
	}
}

func TestReconcileActiveProject(t *testing.T) {
	state := Reconcile(newTestProject(), t0, &backer, noMoney)

	require.Equal(t, StatusActive, state.Status)
	require.True(t, state.CanContribute)
	require.False(t, state.CanRefund)
	require.False(t, state.CanWithdraw)
	require.Equal(t, "", state.Badge())
}

func TestReconcileExpiredWithoutContribution(t *testing.T) {
	state := Reconcile(newTestProject(), t0.Add(86401*time.Second), &backer, noMoney)

	require.Equal(t, StatusExpired, state.Status)
	require.False(t, state.CanContribute)
	require.False(t, state.CanRefund, "nothing to refund")
	require.Equal(t, "Expired", state.Badge())
}

func TestReconcileExpiredWithContribution(t *testing.T) {
	state := Reconcile(newTestProject(), t0.Add(86401*time.Second), &backer, big.NewInt(500))

	require.Equal(t, StatusExpired, state.Status)
	require.True(t, state.CanRefund)
	require.Equal(t, big.NewInt(500), state.UserContribution)
}

func TestReconcileCompletedAlreadyWithdrawn(t *testing.T) {
	p := newTestProject()
	p.IsCompleted = true
	p.FundsRaised = big.NewInt(0)

	state := Reconcile(p, t0, &owner, noMoney)

	require.Equal(t, StatusCompleted, state.Status)
	require.True(t, state.IsOwner)
	require.False(t, state.CanWithdraw, "funds already zeroed")
	require.Equal(t, big.NewInt(1000), state.RaisedForDisplay)
	require.Equal(t, "Completed", state.Badge())
}

func TestReconcileCompletedWithdrawableByOwnerOnly(t *testing.T) {
	p := newTestProject()
	p.IsCompleted = true
	p.FundsRaised = big.NewInt(1200)

	require.True(t, Reconcile(p, t0, &owner, noMoney).CanWithdraw)
	require.False(t, Reconcile(p, t0, &backer, noMoney).CanWithdraw)
	require.False(t, Reconcile(p, t0, nil, noMoney).CanWithdraw)
}

func TestReconcileOwnerMatchIgnoresHexCase(t *testing.T) {
	p := newTestProject()
	p.IsCompleted = true
	p.FundsRaised = big.NewInt(1000)

	lower := common.HexToAddress("0xd5fe7e6eb04450095a078a6e31610f2d7617c205")
	state := Reconcile(p, t0, &lower, noMoney)

	require.True(t, state.IsOwner)
	require.True(t, state.CanWithdraw)
}

func TestReconcileCompletedTakesPrecedenceOverExpired(t *testing.T) {
	p := newTestProject()
	p.IsCompleted = true
	p.FundsRaised = big.NewInt(1000)

	state := Reconcile(p, t0.Add(10*86400*time.Second), &backer, big.NewInt(300))

	require.Equal(t, StatusCompleted, state.Status)
	require.False(t, state.CanContribute)
	require.False(t, state.CanRefund)
}

func TestReconcileDeadlineIsInclusive(t *testing.T) {
	p := newTestProject()
	state := Reconcile(p, p.DeadlineTime(), &backer, noMoney)

	require.Equal(t, StatusActive, state.Status)
	require.True(t, state.CanContribute)
}

func TestReconcileZeroGoalAndNilAmounts(t *testing.T) {
	p := newTestProject()
	p.Goal = nil
	p.FundsRaised = nil
	p.IsCompleted = true

	state := Reconcile(p, t0, &owner, nil)

	require.Equal(t, StatusCompleted, state.Status)
	require.Equal(t, 0, state.RaisedForDisplay.Sign())
	require.False(t, state.CanWithdraw)
	require.Equal(t, 0, state.UserContribution.Sign())
}

func TestReconcileIsIdempotent(t *testing.T) {
	p := newTestProject()
	contribution := big.NewInt(42)
	now := t0.Add(2 * 86400 * time.Second)

	first := Reconcile(p, now, &backer, contribution)
	second := Reconcile(p, now, &backer, contribution)

	require.Equal(t, first, second)
	require.Equal(t, big.NewInt(42), contribution, "input must not be mutated")
}

// TestReconcileProperties walks a grid of inputs and checks the eligibility rules hold for each
func TestReconcileProperties(t *testing.T) {
	accounts := []*common.Address{nil, &owner, &backer}
	contributions := []*big.Int{big.NewInt(0), big.NewInt(1)}
	raisedValues := []*big.Int{big.NewInt(0), big.NewInt(999), big.NewInt(1000)}
	times := []time.Time{t0, t0.Add(86400 * time.Second), t0.Add(86401 * time.Second)}

	for _, completed := range []bool{false, true} {
		for _, raised := range raisedValues {
			for _, now := range times {
				for _, acc := range accounts {
					for _, c := range contributions {
						p := newTestProject()
						p.IsCompleted = completed
						p.FundsRaised = raised
						s := Reconcile(p, now, acc, c)
						expired := now.Unix() > int64(p.Deadline)

						if completed {
							require.Equal(t, StatusCompleted, s.Status)
							require.False(t, s.CanContribute)
							require.Equal(t, p.Goal, s.RaisedForDisplay)
						} else if expired {
							require.Equal(t, StatusExpired, s.Status)
							require.False(t, s.CanContribute)
						} else {
							require.Equal(t, StatusActive, s.Status)
							require.True(t, s.CanContribute)
						}

						require.Equal(t, s.Status == StatusExpired && c.Sign() > 0, s.CanRefund)
						isOwner := acc != nil && *acc == owner
						require.Equal(t, completed && isOwner && raised.Sign() != 0, s.CanWithdraw)
					}
				}
			}
		}
	}
}
