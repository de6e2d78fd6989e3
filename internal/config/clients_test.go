package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClients(t *testing.T) {
	clients, err := LoadClients("testdata/clients.json")
	require.NoError(t, err)
	require.Len(t, clients, 2)

	cfg, ok := clients.Lookup("stroke-association")
	require.True(t, ok)
	assert.Equal(t, "merchant-1", cfg.MerchantID)
	assert.Equal(t, "Stroke Association", cfg.DisplayName)
	assert.Equal(t, "donations-stroke-association", cfg.TopicName)

	_, ok = clients.Lookup("nonvalidid")
	assert.False(t, ok)
}

func TestLoadClients_MissingCredential(t *testing.T) {
	_, err := LoadClients("testdata/clients_missing_key.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken-client")
}

func TestLoadClients_MissingFile(t *testing.T) {
	_, err := LoadClients("testdata/does_not_exist.json")
	require.Error(t, err)
}
