// pkg/certs/certbot_test.go

package certs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest(strategy Strategy) Request {
	return Request{
		Domain:          "example.com",
		Email:           "admin@example.com",
		Strategy:        strategy,
		ConfDir:         "/opt/homelab/proxy/certbot/conf",
		WebRoot:         "/opt/homelab/proxy/certbot/www",
		CredentialsFile: "/root/.secrets/cloudflare.ini",
	}
}

func TestBuildArgs(t *testing.T) {
	t.Run("manual DNS", func(t *testing.T) {
		args := BuildArgs(baseRequest(ManualDNS))

		assert.Equal(t, "certonly", args[0])
		assert.Contains(t, args, "--manual")
		assert.Contains(t, args, "--preferred-challenges")
		assert.NotContains(t, args, "--non-interactive",
			"manual mode waits for the operator to create TXT records")
		assertDomains(t, args, "example.com", "*.example.com")
	})

	t.Run("DNS plugin", func(t *testing.T) {
		args := BuildArgs(baseRequest(PluginDNS))

		assert.Contains(t, args, "--non-interactive")
		assert.Contains(t, args, "--dns-cloudflare")
		i := indexOf(args, "--dns-cloudflare-credentials")
		require.GreaterOrEqual(t, i, 0)
		assert.Equal(t, "/root/.secrets/cloudflare.ini", args[i+1])
		assertDomains(t, args, "example.com", "*.example.com")
	})

	t.Run("HTTP webroot", func(t *testing.T) {
		args := BuildArgs(baseRequest(HTTPMethod))

		assert.Contains(t, args, "--non-interactive")
		i := indexOf(args, "--webroot-path")
		require.GreaterOrEqual(t, i, 0)
		assert.Equal(t, "/opt/homelab/proxy/certbot/www", args[i+1])
		assertDomains(t, args, "example.com")
		assert.NotContains(t, args, "*.example.com",
			"HTTP challenges cannot validate wildcards")
	})

	t.Run("staging flag", func(t *testing.T) {
		req := baseRequest(ManualDNS)
		assert.NotContains(t, BuildArgs(req), "--staging")

		req.Staging = true
		assert.Contains(t, BuildArgs(req), "--staging")
	})

	t.Run("email and config dir always present", func(t *testing.T) {
		for _, s := range []Strategy{ManualDNS, PluginDNS, HTTPMethod} {
			args := BuildArgs(baseRequest(s))
			i := indexOf(args, "--email")
			require.GreaterOrEqual(t, i, 0, "strategy %s", s)
			assert.Equal(t, "admin@example.com", args[i+1])
			i = indexOf(args, "--config-dir")
			require.GreaterOrEqual(t, i, 0)
			assert.Equal(t, "/opt/homelab/proxy/certbot/conf", args[i+1])
		}
	})
}

func TestStrategies_MenuOrder(t *testing.T) {
	require.Len(t, Strategies, 3)
	assert.Equal(t, ManualDNS, Strategies[0].Strategy)
	assert.Equal(t, PluginDNS, Strategies[1].Strategy)
	assert.Equal(t, HTTPMethod, Strategies[2].Strategy)
	for _, s := range Strategies {
		assert.NotEmpty(t, s.Description)
	}
	assert.True(t, strings.Contains(Strategies[2].Description, "no wildcard"))
}

func assertDomains(t *testing.T, args []string, want ...string) {
	t.Helper()
	var got []string
	for i, a := range args {
		if a == "-d" && i+1 < len(args) {
			got = append(got, args[i+1])
		}
	}
	assert.Equal(t, want, got)
}

func indexOf(args []string, flag string) int {
	for i, a := range args {
		if a == flag {
			return i
		}
	}
	return -1
}
