// Package mocks provides testify mocks of the clients interfaces.
package mocks

import (
	"context"

	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/mock"
	"github.com/vitwit/pinetwork/clients"
)

// Ledger is a mock of clients.Ledger.
type Ledger struct {
	mock.Mock
}

// NewLedger creates a Ledger mock whose expectations are asserted when the
// test ends.
func NewLedger(t interface {
	mock.TestingT
	Cleanup(func())
}) *Ledger {
	m := &Ledger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Ledger) LoadAccount(ctx context.Context, accountID string) (txnbuild.Account, error) {
	args := m.Called(ctx, accountID)
	account, _ := args.Get(0).(txnbuild.Account)
	return account, args.Error(1)
}

func (m *Ledger) FetchBaseFee(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Ledger) FetchTimebounds(ctx context.Context, seconds int64) (txnbuild.TimeBounds, error) {
	args := m.Called(ctx, seconds)
	return args.Get(0).(txnbuild.TimeBounds), args.Error(1)
}

func (m *Ledger) SubmitTransaction(ctx context.Context, tx *txnbuild.Transaction) (*clients.SubmitResult, error) {
	args := m.Called(ctx, tx)
	res, _ := args.Get(0).(*clients.SubmitResult)
	return res, args.Error(1)
}

var _ clients.Ledger = (*Ledger)(nil)
