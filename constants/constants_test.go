package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("EARTRAINER_PORT", "")
	t.Setenv("EARTRAINER_OUT_DIR", "")
	t.Setenv("EARTRAINER_ALLOWED_ORIGINS", "")

	assert := assert.New(t)
	assert.Equal("8080", GetPort())
	assert.Equal("./out", GetOutDir())
	assert.Equal([]string{"*"}, GetAllowedOrigins())
}

func TestAllowedOriginsSplit(t *testing.T) {
	t.Setenv("EARTRAINER_ALLOWED_ORIGINS", "http://localhost:3000, https://ear.example.com ,")
	assert.Equal(t, []string{"http://localhost:3000", "https://ear.example.com"}, GetAllowedOrigins())
}

func TestIsProduction(t *testing.T) {
	t.Setenv("EARTRAINER_ENV", "production")
	assert.True(t, IsProduction())
}
