package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		merged   int
		failures int
		want     OutcomeStatus
	}{
		{name: "flights and no failures", merged: 3, failures: 0, want: StatusOK},
		{name: "flights and failures", merged: 3, failures: 2, want: StatusDegraded},
		{name: "nothing and failures", merged: 0, failures: 1, want: StatusFailed},
		{name: "nothing and no failures", merged: 0, failures: 0, want: StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.merged, tt.failures))
		})
	}
}

func TestSourceResult_IsSuccess(t *testing.T) {
	assert.True(t, SourceResult{Source: "a"}.IsSuccess())
	assert.False(t, SourceResult{Source: "a", Err: NewTimeoutError("a", nil)}.IsSuccess())
}

func TestAggregateOutcome_FailedSources(t *testing.T) {
	o := &AggregateOutcome{
		Failures: []SourceResult{
			{Source: "cardsite", Err: NewTimeoutError("cardsite", nil)},
			{Source: "tablesite", Err: NewTransportError("tablesite", nil)},
		},
	}
	assert.Equal(t, []string{"cardsite", "tablesite"}, o.FailedSources())

	empty := &AggregateOutcome{}
	assert.Empty(t, empty.FailedSources())
}
