// Package mocks provides testify mocks for analytics collaborators
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
)

// Dispatcher implements analytics.Dispatcher
type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) Send(ctx context.Context, payload v1alpha1.Payload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// Accept configures the mock to succeed for any payload
func (m *Dispatcher) Accept() *mock.Call {
	return m.On("Send", mock.Anything, mock.Anything).Return(nil)
}

// Sent returns the payloads passed to Send, in call order
func (m *Dispatcher) Sent() []v1alpha1.Payload {
	var out []v1alpha1.Payload
	for _, c := range m.Calls {
		if c.Method == "Send" {
			out = append(out, c.Arguments.Get(1).(v1alpha1.Payload))
		}
	}
	return out
}
