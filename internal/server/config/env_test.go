package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADDRESS", ":6060")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("TOKEN_VALIDITY", "45m")
	t.Setenv("BCRYPT_COST", "14")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":6060", c.EndpointAddrHTTP)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 45*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, 14, c.BcryptCost)
	// unset variables keep defaults
	assert.Equal(t, "recipe-images", c.S3Bucket)
}

func TestParseEnv_EmptyEnvIsNoop(t *testing.T) {
	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, 10, c.BcryptCost)
}
