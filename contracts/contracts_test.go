package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApprovalTimeoutOrDefault(t *testing.T) {
	require.Equal(t, 300*time.Second, ApprovalTimeoutOrDefault(0))
	require.Equal(t, 300*time.Second, ApprovalTimeoutOrDefault(-5))
	require.Equal(t, 90*time.Second, ApprovalTimeoutOrDefault(90))
}
