// Package itmsclient assembles the ITMS client core: the api facade (mock
// or network, decided once at startup), the key-value store behind the mock
// layer and the session state machine on top.
package itmsclient

import (
	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/api/httpapi"
	"github.com/itmsdev/itms-client/api/mockapi"
	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/session"
	"github.com/itmsdev/itms-client/storage/kv"
)

// New returns a fully-formed facade. The mock/real choice happens here and
// only here; call sites never branch on it.
func New(conf *core.Config, store kv.Store, opts ...httpapi.Option) *api.API {
	if conf.UseMockAPI {
		return mockapi.New(conf, store)
	}
	return httpapi.New(conf, opts...)
}

// OpenStore opens the configured key-value store: file-backed when
// conf.StatePath is set, in-memory otherwise.
func OpenStore(conf *core.Config) (kv.Store, error) {
	if conf.StatePath == "" {
		return kv.NewMemory(), nil
	}
	return kv.OpenFile(conf.StatePath)
}

// NewSession builds the session state machine over the facade.
func NewSession(a *api.API, log core.Logger) *session.Session {
	return session.New(a.Auth, log)
}
