package projectmanager

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
	"gitlab.com/TitanInd/crowdfund-client/internal/resources/project"
	"golang.org/x/sync/errgroup"
)

var (
	ErrRefreshSuperseded = errors.New("refresh superseded by a newer one")
	ErrProjectCount      = errors.New("project count out of range")
)

const maxProjectCount = math.MaxInt32

// Snapshot is the result of one refresh pass, projects are ordered by ascending id
type Snapshot struct {
	Projects    []project.DisplayState
	Account     *common.Address
	RefreshedAt time.Time
}

// ProjectManager rebuilds the project list from the chain. A new refresh cancels
// the one in flight, and only the newest refresh may publish its snapshot.
type ProjectManager struct {
	// config
	concurrency int

	// state
	snapshot   Snapshot
	generation uint64
	cancelPrev context.CancelFunc
	mutex      sync.Mutex

	// deps
	gateway  Gateway
	sessions SessionProvider
	notifier Notifier
	busy     *lib.Busy
	now      func() time.Time
	log      interfaces.ILogger
}

func NewProjectManager(gateway Gateway, sessions SessionProvider, notifier Notifier, busy *lib.Busy, concurrency int, log interfaces.ILogger) *ProjectManager {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ProjectManager{
		concurrency: concurrency,
		gateway:     gateway,
		sessions:    sessions,
		notifier:    notifier,
		busy:        busy,
		now:         time.Now,
		log:         log,
	}
}

// SetClock overrides the time source, used in tests
func (pm *ProjectManager) SetClock(now func() time.Time) {
	pm.now = now
}

func (pm *ProjectManager) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pm.mutex.Lock()
	if pm.cancelPrev != nil {
		pm.cancelPrev()
	}
	pm.generation++
	gen := pm.generation
	pm.cancelPrev = cancel
	pm.mutex.Unlock()

	release := pm.busy.Acquire()
	defer release()

	snap, err := pm.load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// superseded, or the session that started it is gone
			pm.log.Debugf("refresh #%d cancelled: %s", gen, err)
			return ErrRefreshSuperseded
		}
		pm.log.Errorf("refresh #%d failed: %s", gen, err)
		pm.notifier.Error("Error loading projects", err)
		return err
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	if gen != pm.generation {
		return ErrRefreshSuperseded
	}
	pm.snapshot = snap
	pm.cancelPrev = nil
	pm.log.Debugf("refresh #%d loaded %d projects", gen, len(snap.Projects))

	return nil
}

// Snapshot returns the latest published project list
func (pm *ProjectManager) Snapshot() Snapshot {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	return pm.snapshot
}

func (pm *ProjectManager) IsBusy() bool {
	return pm.busy.IsBusy()
}

func (pm *ProjectManager) load(ctx context.Context) (Snapshot, error) {
	// read once so every project in the pass is judged at the same instant
	now := pm.now()

	var account *common.Address
	if s := pm.sessions.Current(); s != nil {
		acc := s.Account
		account = &acc
	}

	count, err := pm.gateway.GetProjectCount(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	if count > maxProjectCount {
		return Snapshot{}, lib.NewRemoteCallError("projectCount", fmt.Errorf("%w: %d", ErrProjectCount, count))
	}

	states := make([]project.DisplayState, count)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(pm.concurrency)

	for i := uint64(1); i <= count; i++ {
		projectID := i
		grp.Go(func() error {
			state, err := pm.loadProject(grpCtx, projectID, now, account)
			if err != nil {
				return err
			}
			states[projectID-1] = state
			return nil
		})
	}

	err = grp.Wait()
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Projects:    states,
		Account:     account,
		RefreshedAt: now,
	}, nil
}

func (pm *ProjectManager) loadProject(ctx context.Context, projectID uint64, now time.Time, account *common.Address) (project.DisplayState, error) {
	p, err := pm.gateway.GetProject(ctx, projectID)
	if err != nil {
		return project.DisplayState{}, err
	}

	// owners are assumed not to back their own projects
	contribution := new(big.Int)
	if account != nil && *account != p.Owner {
		contribution, err = pm.gateway.GetContribution(ctx, projectID, *account)
		if err != nil {
			return project.DisplayState{}, err
		}
	}

	return project.Reconcile(*p, now, account, contribution), nil
}
