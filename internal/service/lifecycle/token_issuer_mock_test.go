package lifecycle

import (
	"context"
	"sync"
)

var _ tokenIssuer = &tokenIssuerMock{}

type tokenIssuerMock struct {
	ServiceTokenFunc func(ctx context.Context, username string, password string) (string, error)

	calls struct {
		ServiceToken []struct {
			Ctx      context.Context
			Username string
			Password string
		}
	}
	lockServiceToken sync.RWMutex
}

func (mock *tokenIssuerMock) ServiceToken(ctx context.Context, username string, password string) (string, error) {
	if mock.ServiceTokenFunc == nil {
		panic("tokenIssuerMock.ServiceTokenFunc: method is nil but tokenIssuer.ServiceToken was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Username string
		Password string
	}{
		Ctx:      ctx,
		Username: username,
		Password: password,
	}
	mock.lockServiceToken.Lock()
	mock.calls.ServiceToken = append(mock.calls.ServiceToken, callInfo)
	mock.lockServiceToken.Unlock()
	return mock.ServiceTokenFunc(ctx, username, password)
}

func (mock *tokenIssuerMock) ServiceTokenCalls() []struct {
	Ctx      context.Context
	Username string
	Password string
} {
	mock.lockServiceToken.RLock()
	calls := mock.calls.ServiceToken
	mock.lockServiceToken.RUnlock()
	return calls
}
