package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageForProviderMapsKnownKindsUsingDefaultCopy(t *testing.T) {
	require.Equal(t, DefaultUICopy.ProviderThrottled,
		MessageForProvider(NewProviderError(ProviderErrorRateLimit, "slow down"), nil))
	require.Equal(t, DefaultUICopy.Timeout,
		MessageForProvider(NewProviderError(ProviderErrorTimeout, "too slow"), nil))
	require.Equal(t, DefaultUICopy.ProviderFallback,
		MessageForProvider(NewProviderError(ProviderErrorOther, "mystery"), nil))
}

func TestMessageForProviderHonorsCallerSuppliedCopy(t *testing.T) {
	custom := DefaultUICopy
	custom.ProviderThrottled = "slow down, champ"

	require.Equal(t, "slow down, champ",
		MessageForProvider(NewProviderError(ProviderErrorRateLimit, "slow down"), &custom))
}

func TestMessageForHookDistinguishesTimeoutFromBlocked(t *testing.T) {
	require.Equal(t, DefaultUICopy.Timeout,
		MessageForHook(NewHookError(HookErrorTimeout, "exceeded deadline", "h1", nil), nil))
	require.Equal(t, DefaultUICopy.HookBlocked,
		MessageForHook(NewHookError(HookErrorHandlerFailed, "boom", "h1", nil), nil))
}

func TestMessageForToolFallsBackToUnclassifiedWhenNotFound(t *testing.T) {
	require.Equal(t, DefaultUICopy.Unclassified,
		MessageForTool(NewToolNotFoundError("search"), nil))
	require.Equal(t, DefaultUICopy.ToolFailed,
		MessageForTool(NewToolError(ToolErrorExecutionFailed, "exit 1"), nil))
}

func TestMessageForContextReturnsOverflowCopy(t *testing.T) {
	require.Equal(t, DefaultUICopy.ContextOverflow,
		MessageForContext(NewContextError(ContextErrorCompactionFailed, "too many tokens"), nil))
}
