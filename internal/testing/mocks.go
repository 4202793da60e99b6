package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// MockGateway is a mock implementation of the multipass.Client interface.
// It can be used across all tests that need to stand in for the backend.
type MockGateway struct {
	mock.Mock
}

// Launch creates a mock virtual machine.
func (m *MockGateway) Launch(ctx context.Context, spec multipass.LaunchSpec) (multipass.LaunchResult, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).(multipass.LaunchResult), args.Error(1)
}

// SetPowerState applies a mock power transition to a batch of names.
func (m *MockGateway) SetPowerState(ctx context.Context, names []string, target multipass.PowerTarget) (multipass.PowerResult, error) {
	args := m.Called(ctx, names, target)
	return args.Get(0).(multipass.PowerResult), args.Error(1)
}

// Query returns mock machine states.
func (m *MockGateway) Query(ctx context.Context, names []string) ([]multipass.VMState, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]multipass.VMState), args.Error(1)
}

// Exec runs a mock command inside a machine.
func (m *MockGateway) Exec(ctx context.Context, name string, command []string) (multipass.ExecResult, error) {
	args := m.Called(ctx, name, command)
	return args.Get(0).(multipass.ExecResult), args.Error(1)
}

// Transfer copies a mock file into a machine.
func (m *MockGateway) Transfer(ctx context.Context, localPath, remoteSpec string) error {
	args := m.Called(ctx, localPath, remoteSpec)
	return args.Error(0)
}

// Delete removes a mock machine.
func (m *MockGateway) Delete(ctx context.Context, name string, purge bool) error {
	args := m.Called(ctx, name, purge)
	return args.Error(0)
}

// NewMockGateway creates a new MockGateway with no canned behavior.
// Chain the With* helpers to script the backend.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// WithVMs configures the mock to report the given machine states for
// every query.
func (m *MockGateway) WithVMs(states ...multipass.VMState) *MockGateway {
	m.On("Query", mock.Anything, mock.Anything).Return(states, nil)
	return m
}

// WithQueryError configures every query to fail with err.
func (m *MockGateway) WithQueryError(err error) *MockGateway {
	m.On("Query", mock.Anything, mock.Anything).Return(nil, err)
	return m
}

// WithPowerSuccess configures every power batch to fully apply.
func (m *MockGateway) WithPowerSuccess() *MockGateway {
	m.On("SetPowerState", mock.Anything, mock.Anything, mock.Anything).
		Return(multipass.PowerResult{}, nil)
	return m
}

// WithPowerError configures every power batch to fail with err.
func (m *MockGateway) WithPowerError(err error) *MockGateway {
	m.On("SetPowerState", mock.Anything, mock.Anything, mock.Anything).
		Return(multipass.PowerResult{}, err)
	return m
}

// WithLaunchSuccess configures every launch to succeed.
func (m *MockGateway) WithLaunchSuccess() *MockGateway {
	m.On("Launch", mock.Anything, mock.Anything).
		Return(multipass.LaunchResult{}, nil)
	return m
}

// WithLaunchError configures every launch to fail with err.
func (m *MockGateway) WithLaunchError(err error) *MockGateway {
	m.On("Launch", mock.Anything, mock.Anything).
		Return(multipass.LaunchResult{}, err)
	return m
}

// WithExecSuccess configures every remote command to exit zero.
func (m *MockGateway) WithExecSuccess() *MockGateway {
	m.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(multipass.ExecResult{OK: true}, nil)
	return m
}

// WithExecResult configures every remote command to return the given result.
func (m *MockGateway) WithExecResult(result multipass.ExecResult) *MockGateway {
	m.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(result, nil)
	return m
}

// WithTransferSuccess configures every file transfer to succeed.
func (m *MockGateway) WithTransferSuccess() *MockGateway {
	m.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return m
}

// WithDeleteSuccess configures every delete to succeed.
func (m *MockGateway) WithDeleteSuccess() *MockGateway {
	m.On("Delete", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return m
}

// MockConfirmer is a mock implementation of the lifecycle.Confirmer
// interface.
type MockConfirmer struct {
	mock.Mock
}

// Confirm answers a mock confirmation gate.
func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// NewMockConfirmer creates a new MockConfirmer with no canned answers.
func NewMockConfirmer() *MockConfirmer {
	return &MockConfirmer{}
}

// WithAnswer configures the mock to answer every gate the same way.
func (m *MockConfirmer) WithAnswer(answer bool) *MockConfirmer {
	m.On("Confirm", mock.Anything, mock.Anything).Return(answer, nil)
	return m
}

// WithAnswers configures the mock to replay the given answers, one gate
// each, in order.
func (m *MockConfirmer) WithAnswers(answers ...bool) *MockConfirmer {
	for _, answer := range answers {
		m.On("Confirm", mock.Anything, mock.Anything).Return(answer, nil).Once()
	}
	return m
}

// WithError configures every gate to fail with err.
func (m *MockConfirmer) WithError(err error) *MockConfirmer {
	m.On("Confirm", mock.Anything, mock.Anything).Return(false, err)
	return m
}
