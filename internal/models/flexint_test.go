package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlexIntAcceptsNumberAndNumericString(t *testing.T) {
	var n FlexInt
	require.NoError(t, json.Unmarshal([]byte(`12`), &n))
	require.Equal(t, 12, n.Int())

	var s FlexInt
	require.NoError(t, json.Unmarshal([]byte(`"34"`), &s))
	require.Equal(t, 34, s.Int())
}

func TestFlexIntRejectsNonNumeric(t *testing.T) {
	var n FlexInt
	require.Error(t, json.Unmarshal([]byte(`"penthouse"`), &n))
	require.Error(t, json.Unmarshal([]byte(`true`), &n))
}
