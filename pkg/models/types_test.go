package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONArrayScan(t *testing.T) {
	var arr JSONArray
	require.NoError(t, arr.Scan([]byte(`["electronics","jewelry"]`)))
	require.Equal(t, JSONArray{"electronics", "jewelry"}, arr)

	require.NoError(t, arr.Scan(`["experience"]`))
	require.Equal(t, JSONArray{"experience"}, arr)

	require.NoError(t, arr.Scan(nil))
	require.Nil(t, arr)

	// A driver value we cannot decode is an error, not a silent nil
	require.Error(t, arr.Scan(42))
}

func TestJSONArrayValue(t *testing.T) {
	var nilArr JSONArray
	v, err := nilArr.Value()
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = JSONArray{"electronics"}.Value()
	require.NoError(t, err)
	require.JSONEq(t, `["electronics"]`, string(v.([]byte)))
}
