package session

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
	"gitlab.com/TitanInd/crowdfund-client/internal/notify"
	"gitlab.com/TitanInd/crowdfund-client/internal/repositories/wallet"
	"go.uber.org/atomic"
)

var ErrNoAccounts = errors.New("wallet returned no accounts")

type Wallet interface {
	RequestAccounts(ctx context.Context) ([]common.Address, error)
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Notifier interface {
	Push(level lib.AlertLevel, message string) notify.Alert
	Error(prefix string, err error) notify.Alert
}

// Manager owns the single connected account. States are Disconnected (no session)
// and Connected(account).
type Manager struct {
	// state
	current      *Session
	mutex        sync.RWMutex
	firstAttempt *atomic.Bool
	baseCtx      context.Context

	// deps
	wallet    Wallet // nil when no wallet is available
	refresher Refresher
	notifier  Notifier
	log       interfaces.ILogger
}

func NewManager(wallet Wallet, notifier Notifier, log interfaces.ILogger) *Manager {
	return &Manager{
		firstAttempt: atomic.NewBool(true),
		baseCtx:      context.Background(),
		wallet:       wallet,
		notifier:     notifier,
		log:          log,
	}
}

// SetRefresher sets the component refreshed after every login. The refresher
// reads the session back from the manager, so it is wired after construction.
func (m *Manager) SetRefresher(refresher Refresher) {
	m.refresher = refresher
}

// Current returns the active session or nil when disconnected
func (m *Manager) Current() *Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

// AutoConnect is the connection attempt made at startup. Its failure is not
// reported to the user if it is the very first attempt.
func (m *Manager) AutoConnect(ctx context.Context) error {
	return m.connect(ctx, true)
}

// Connect is a user-initiated connection request
func (m *Manager) Connect(ctx context.Context) error {
	return m.connect(ctx, false)
}

func (m *Manager) connect(ctx context.Context, automatic bool) error {
	isFirst := m.firstAttempt.CAS(true, false)

	if m.wallet == nil {
		err := lib.NewWalletError("Please install a wallet to use this feature.", nil)
		m.notifier.Error("", err)
		return err
	}

	accounts, err := m.wallet.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = ErrNoAccounts
	}
	if err != nil {
		walletErr := lib.NewWalletError("User denied account access or error occurred", err)
		if automatic && isFirst {
			m.log.Debugf("initial wallet connection failed: %s", err)
		} else {
			m.log.Warnf("wallet connection failed: %s", err)
			m.notifier.Error("", walletErr)
		}
		return walletErr
	}

	m.login(accounts[0])
	return nil
}

// Disconnect is the explicit logout, the only way back to Disconnected
func (m *Manager) Disconnect(ctx context.Context) {
	m.mutex.Lock()
	s := m.current
	m.current = nil
	m.mutex.Unlock()

	if s == nil {
		return
	}
	s.close()

	m.log.Infof("logged out %s", s.Account.Hex())
	m.notifier.Push(lib.AlertInfo, "Logged out successfully.")

	// drops owner and contributor actions from the view
	m.refresh(ctx)
}

// Run consumes the wallet's account change stream. A switch to a different
// account is an implicit re-login.
func (m *Manager) Run(ctx context.Context, events <-chan wallet.AccountsChanged) error {
	defer m.teardown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			m.onAccountsChanged(ev)
		}
	}
}

func (m *Manager) onAccountsChanged(ev wallet.AccountsChanged) {
	if len(ev.Accounts) == 0 {
		// external wallet disconnects are not handled, the session stays as is
		m.log.Warnf("wallet exposes no accounts, keeping current session")
		return
	}
	m.login(ev.Accounts[0])
}

func (m *Manager) login(account common.Address) {
	m.mutex.Lock()
	prev := m.current
	if prev != nil && prev.Account == account {
		m.mutex.Unlock()
		return
	}
	s := NewSession(m.baseCtx, account)
	m.current = s
	m.mutex.Unlock()

	if prev != nil {
		prev.close()
		m.log.Infof("account changed from %s to %s", prev.Account.Hex(), account.Hex())
	}

	m.log.With("session", s.ID.String()).Infof("login successful %s", account.Hex())
	m.notifier.Push(lib.AlertSuccess, "Wallet connected successfully!")

	m.refresh(s.Context())
}

func (m *Manager) refresh(ctx context.Context) {
	if m.refresher == nil {
		return
	}
	err := m.refresher.Refresh(ctx)
	if err != nil {
		m.log.Debugf("refresh after session change: %s", err)
	}
}

func (m *Manager) teardown() {
	m.mutex.Lock()
	s := m.current
	m.current = nil
	m.mutex.Unlock()

	if s != nil {
		s.close()
	}
}
