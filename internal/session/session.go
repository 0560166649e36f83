package session

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Session is the connected account context. It is created on connect and
// torn down on disconnect or account switch, cancelling its context.
type Session struct {
	ID          uuid.UUID
	Account     common.Address
	ConnectedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

func NewSession(parent context.Context, account common.Address) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		ID:          uuid.New(),
		Account:     account,
		ConnectedAt: time.Now(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Context is done once the session is torn down
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) close() {
	s.cancel()
}
