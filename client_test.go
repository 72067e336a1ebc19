package ipa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientParity(t *testing.T) {
	for c := Client(0); c < ClientMax; c++ {
		if c.Reserved() {
			continue
		}
		assert.NotEqual(t, c.IsProd(), c.IsCons(), c.String())
	}
	assert.True(t, USBProd.IsProd())
	assert.True(t, USBCons.IsCons())
	assert.True(t, AppsLANCoalCons.IsCons())
	assert.False(t, ClientMax.IsProd())
	assert.False(t, ClientMax.IsCons())
}

func TestClientNames(t *testing.T) {
	assert.Equal(t, "USB_PROD", USBProd.String())
	assert.Equal(t, "DUMMY_CONS", DummyCons.String())
	assert.Equal(t, "RESERVED_14", Client(14).String())
	assert.Equal(t, "Client(130)", ClientMax.String())

	seen := map[string]Client{}
	for c := Client(0); c < ClientMax; c++ {
		name := c.String()
		prev, dup := seen[name]
		assert.False(t, dup, "%s used by %d and %d", name, int(prev), int(c))
		seen[name] = c
	}
}

func TestParseClient(t *testing.T) {
	tests := []struct {
		in   string
		want Client
	}{
		{"USB_PROD", USBProd},
		{"usb_cons", USBCons},
		{"IPA_CLIENT_APPS_WAN_COAL_CONS", AppsWANCoalCons},
		{" wlan1_cons ", WLAN1Cons},
	}
	for _, tt := range tests {
		got, err := ParseClient(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "RESERVED_14", "NOT_A_CLIENT"} {
		_, err := ParseClient(bad)
		assert.Error(t, err, bad)
	}
}

func TestClientIsTest(t *testing.T) {
	assert.True(t, TestProd.IsTest())
	assert.True(t, Test4Cons.IsTest())
	assert.False(t, USBProd.IsTest())
	assert.False(t, DummyCons.IsTest())
}

func TestClientJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Client{"c": ODLDPLCons})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"ODL_DPL_CONS"}`, string(b))

	var out struct{ C Client }
	require.NoError(t, json.Unmarshal([]byte(`{"C":"MHI_CONS"}`), &out))
	assert.Equal(t, MHICons, out.C)
}
