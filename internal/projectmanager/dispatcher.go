package projectmanager

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
)

type IntentKind string

const (
	IntentCreateProject IntentKind = "create-project"
	IntentContribute    IntentKind = "contribute"
	IntentWithdraw      IntentKind = "withdraw"
	IntentRefund        IntentKind = "refund"
)

// Intent is a user action queued for the dispatcher
type Intent struct {
	Kind       IntentKind
	Create     CreateProjectForm
	Contribute ContributeForm
	ProjectID  uint64

	result chan error
}

type submitFunc func(ctx context.Context, from common.Address) (common.Hash, error)

// Dispatcher validates user actions and sends at most one contract call per action.
// Actions submitted through Submit are executed one at a time by Run.
type Dispatcher struct {
	callTimeout time.Duration
	intents     chan Intent

	gateway   Gateway
	sessions  SessionProvider
	refresher Refresher
	notifier  Notifier
	busy      *lib.Busy
	validate  *validator.Validate
	log       interfaces.ILogger
}

func NewDispatcher(gateway Gateway, sessions SessionProvider, refresher Refresher, notifier Notifier, busy *lib.Busy, callTimeout time.Duration, log interfaces.ILogger) *Dispatcher {
	return &Dispatcher{
		callTimeout: callTimeout,
		intents:     make(chan Intent),
		gateway:     gateway,
		sessions:    sessions,
		refresher:   refresher,
		notifier:    notifier,
		busy:        busy,
		validate:    validator.New(),
		log:         log,
	}
}

func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case intent := <-d.intents:
			intent.result <- d.Dispatch(ctx, intent)
		}
	}
}

// Submit queues the intent and waits for its outcome. Cancelling ctx stops the
// wait but not an action that has already been picked up.
func (d *Dispatcher) Submit(ctx context.Context, intent Intent) error {
	intent.result = make(chan error, 1)

	select {
	case d.intents <- intent:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-intent.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent) error {
	switch intent.Kind {
	case IntentCreateProject:
		return d.CreateProject(ctx, intent.Create)
	case IntentContribute:
		return d.Contribute(ctx, intent.Contribute)
	case IntentWithdraw:
		return d.WithdrawFunds(ctx, intent.ProjectID)
	case IntentRefund:
		return d.Refund(ctx, intent.ProjectID)
	default:
		return lib.NewValidationError("unknown action " + string(intent.Kind))
	}
}

func (d *Dispatcher) CreateProject(ctx context.Context, form CreateProjectForm) error {
	goal, durationDays, err := form.parse(d.validate)
	if err != nil {
		d.notifier.Error("", err)
		return err
	}

	return d.execute(ctx, "Project created successfully!", "Error creating project", func(ctx context.Context, from common.Address) (common.Hash, error) {
		return d.gateway.SubmitCreate(ctx, from, form.Title, form.Description, goal, durationDays)
	})
}

func (d *Dispatcher) Contribute(ctx context.Context, form ContributeForm) error {
	projectID, amount, err := form.parse(d.validate)
	if err != nil {
		d.notifier.Error("", err)
		return err
	}

	return d.execute(ctx, "Contribution successful!", "Error contributing to project", func(ctx context.Context, from common.Address) (common.Hash, error) {
		return d.gateway.SubmitContribute(ctx, from, projectID, amount)
	})
}

func (d *Dispatcher) WithdrawFunds(ctx context.Context, projectID uint64) error {
	return d.execute(ctx, "Funds withdrawn successfully!", "Error withdrawing funds", func(ctx context.Context, from common.Address) (common.Hash, error) {
		return d.gateway.SubmitWithdraw(ctx, from, projectID)
	})
}

func (d *Dispatcher) Refund(ctx context.Context, projectID uint64) error {
	return d.execute(ctx, "Refund successful!", "Error processing refund", func(ctx context.Context, from common.Address) (common.Hash, error) {
		return d.gateway.SubmitRefund(ctx, from, projectID)
	})
}

func (d *Dispatcher) execute(ctx context.Context, successMsg string, failurePrefix string, submit submitFunc) error {
	s := d.sessions.Current()
	if s == nil {
		err := lib.NewWalletError(MsgConnectWallet, nil)
		d.notifier.Error("", err)
		return err
	}

	release := d.busy.Acquire()
	defer release()

	callCtx := ctx
	if d.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.callTimeout)
		defer cancel()
	}

	txHash, err := submit(callCtx, s.Account)
	if err != nil {
		d.log.Warnf("%s from %s: %s", failurePrefix, s.Account.Hex(), err)
		d.notifier.Error(failurePrefix, err)
		return err
	}

	d.log.Infof("%s tx %s", successMsg, txHash.Hex())
	d.notifier.Push(lib.AlertSuccess, successMsg)

	// refresh failures are reported by the refresher itself
	_ = d.refresher.Refresh(s.Context())

	return nil
}
