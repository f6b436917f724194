package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillDefaults(t *testing.T) {
	var c Config
	c.FillDefaults()

	assert.Equal(t, "info", c.App.LogLevel)
	assert.Equal(t, ":5000", c.Server.Addr)
	assert.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
	assert.Equal(t, "1h", c.Auth.TokenTTL)
	assert.Equal(t, "https://hacker-news.firebaseio.com/v0", c.Sources.HN.BaseAPI)
	assert.Equal(t, 10, c.Sources.HN.TopN)
}

func TestFillDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{}
	c.App.LogLevel = "debug"
	c.Server.Addr = ":8080"
	c.Sources.HN.TopN = 50
	c.FillDefaults()

	assert.Equal(t, "debug", c.App.LogLevel)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, 50, c.Sources.HN.TopN)
}

func TestFillDefaultsClampsTopN(t *testing.T) {
	c := Config{}
	c.Sources.HN.TopN = 1000
	c.FillDefaults()

	assert.Equal(t, 250, c.Sources.HN.TopN)
}
