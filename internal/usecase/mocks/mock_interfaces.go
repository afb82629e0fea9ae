//	mockgen -destination=internal/usecase/mocks/mock_interfaces.go -package=mocks github.com/iho/gotransfers/internal/usecase RateSource
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	decimal "github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"
)

// MockRateSource is a mock of RateSource interface.
type MockRateSource struct {
	ctrl     *gomock.Controller
	recorder *MockRateSourceMockRecorder
	isgomock struct{}
}

// MockRateSourceMockRecorder is the mock recorder for MockRateSource.
type MockRateSourceMockRecorder struct {
	mock *MockRateSource
}

// NewMockRateSource creates a new mock instance.
func NewMockRateSource(ctrl *gomock.Controller) *MockRateSource {
	mock := &MockRateSource{ctrl: ctrl}
	mock.recorder = &MockRateSourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRateSource) EXPECT() *MockRateSourceMockRecorder {
	return m.recorder
}

// Rate mocks base method.
func (m *MockRateSource) Rate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rate", ctx, currencyCode)
	ret0, _ := ret[0].(decimal.Decimal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Rate indicates an expected call of Rate.
func (mr *MockRateSourceMockRecorder) Rate(ctx, currencyCode any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rate", reflect.TypeOf((*MockRateSource)(nil).Rate), ctx, currencyCode)
}
