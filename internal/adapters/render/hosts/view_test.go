package hosts

import (
	"testing"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHosts(t *testing.T) {
	output, err := Render([]domain.Host{
		{ID: "web-1", Name: "Web", Address: "192.168.1.10", Port: 22, Username: "root", SecretRef: "yzterm/hosts/web-1/password"},
		{ID: "db-1", Address: "db.internal", Port: 2222, Username: "postgres"},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "hosts: 2")
	assert.Contains(t, output, "Web")
	assert.Contains(t, output, "(web-1)")
	assert.Contains(t, output, "root@192.168.1.10:22")
	assert.Contains(t, output, "password: saved")
	assert.Contains(t, output, "postgres@db.internal")
	assert.Contains(t, output, "postgres@db.internal:2222")
	assert.Contains(t, output, "password: none")
	assert.NotContains(t, output, "yzterm/hosts/web-1/password")
}

func TestRenderNoHosts(t *testing.T) {
	output, err := Render(nil)

	require.NoError(t, err)
	assert.Contains(t, output, "hosts: 0")
	assert.Contains(t, output, "No hosts saved.")
}

func TestRenderHostDefaultsPort(t *testing.T) {
	output, err := Render([]domain.Host{{ID: "h", Address: "example.com", Username: "deploy"}})

	require.NoError(t, err)
	assert.Contains(t, output, "deploy@example.com:22")
}
