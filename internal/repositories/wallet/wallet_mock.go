package wallet

import (
	"context"
	"sync"
)

// RPCClientMock records every call and delegates the result to CallContextFunc
type RPCClientMock struct {
	CallContextFunc func(ctx context.Context, result interface{}, method string, args ...interface{}) error

	mutex   sync.Mutex
	Methods []string
	Args    [][]interface{}
	Closed  bool
}

func (m *RPCClientMock) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	m.mutex.Lock()
	m.Methods = append(m.Methods, method)
	m.Args = append(m.Args, args)
	m.mutex.Unlock()

	if m.CallContextFunc == nil {
		return nil
	}
	return m.CallContextFunc(ctx, result, method, args...)
}

func (m *RPCClientMock) Close() {
	m.Closed = true
}

func (m *RPCClientMock) CalledMethods() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]string(nil), m.Methods...)
}

var _ RPCClient = new(RPCClientMock)
