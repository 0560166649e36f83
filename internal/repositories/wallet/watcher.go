package wallet

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-co-op/gocron/v2"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
)

type AccountsReader interface {
	Accounts(ctx context.Context) ([]common.Address, error)
}

// AccountsChanged is emitted when the wallet exposes a different account list
type AccountsChanged struct {
	Accounts []common.Address
}

// AccountWatcher polls the wallet and turns account switches into a single event stream
type AccountWatcher struct {
	// config
	interval time.Duration

	// state
	last        []common.Address
	initialized bool
	events      chan AccountsChanged

	// deps
	wallet AccountsReader
	log    interfaces.ILogger
}

func NewAccountWatcher(wallet AccountsReader, interval time.Duration, log interfaces.ILogger) *AccountWatcher {
	return &AccountWatcher{
		interval: interval,
		events:   make(chan AccountsChanged),
		wallet:   wallet,
		log:      log,
	}
}

func (w *AccountWatcher) Events() <-chan AccountsChanged {
	return w.events
}

func (w *AccountWatcher) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.poll, ctx),
		gocron.WithName("account-watcher"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	scheduler.Start()
	w.log.Infof("watching wallet accounts every %s", w.interval)

	<-ctx.Done()

	err = scheduler.Shutdown()
	if err != nil {
		w.log.Warnf("account watcher shutdown: %s", err)
	}
	return ctx.Err()
}

// poll runs on the scheduler goroutine, singleton mode keeps invocations from overlapping
func (w *AccountWatcher) poll(ctx context.Context) {
	accounts, err := w.wallet.Accounts(ctx)
	if err != nil {
		w.log.Debugf("cannot read wallet accounts: %s", err)
		return
	}

	if !w.initialized {
		w.initialized = true
		w.last = accounts
		return
	}
	if sameAccounts(w.last, accounts) {
		return
	}
	w.last = accounts

	select {
	case w.events <- AccountsChanged{Accounts: accounts}:
	case <-ctx.Done():
	}
}

func sameAccounts(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
