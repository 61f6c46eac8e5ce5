package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintCode_LiteralRoundTrip(t *testing.T) {
	literals := []string{
		"outstandingTransaction",
		"noClient",
		"started",
		"userSign",
		"expiredTransaction",
		"certificateErr",
		"userCancel",
		"cancelled",
		"startFailed",
	}
	for _, lit := range literals {
		var hint HintCode
		require.NoError(t, json.Unmarshal([]byte(`"`+lit+`"`), &hint), lit)

		out, err := json.Marshal(hint)
		require.NoError(t, err)
		assert.Equal(t, `"`+lit+`"`, string(out), lit)
	}
}

func TestErrorCode_LiteralRoundTrip(t *testing.T) {
	literals := []string{
		"alreadyInProgress",
		"invalidParameters",
		"canceled",
		"unauthorized",
		"notFound",
		"requestTimeout",
		"unsupportedMediaType",
		"internalError",
		"maintenance",
	}
	for _, lit := range literals {
		var code ErrorCode
		require.NoError(t, json.Unmarshal([]byte(`"`+lit+`"`), &code), lit)

		out, err := json.Marshal(code)
		require.NoError(t, err)
		assert.Equal(t, `"`+lit+`"`, string(out), lit)
	}
}

func TestHintCode_CaseSensitive(t *testing.T) {
	var hint HintCode
	assert.Error(t, json.Unmarshal([]byte(`"Cancelled"`), &hint))
	assert.Error(t, json.Unmarshal([]byte(`"canceled"`), &hint))
}

func TestCollectResponse_MarshalVariants(t *testing.T) {
	pending := CollectResponse{
		OrderRef: testOrderRef,
		Status:   StatusPending,
		HintCode: HintUserSign,
	}
	data, err := json.Marshal(pending)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"orderRef": "`+testOrderRef.String()+`",
		"status": "pending",
		"hintCode": "userSign"
	}`, string(data))

	var decoded CollectResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, pending, decoded)

	failed := CollectResponse{Status: StatusFailed, HintCode: HintExpiredTransaction}
	data, err = json.Marshal(failed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "failed", "hintCode": "expiredTransaction"}`, string(data))
}

func TestCollectResponse_MarshalUnknownStatus(t *testing.T) {
	_, err := json.Marshal(CollectResponse{Status: "paused"})
	assert.Error(t, err)
}
