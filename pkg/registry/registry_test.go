// pkg/registry/registry_test.go

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(units []Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Name
	}
	return out
}

func TestNew_TopologicalOrder(t *testing.T) {
	t.Run("dependencies come first", func(t *testing.T) {
		reg, err := New([]Unit{
			{Name: "proxy", DependsOn: []string{"base", "indexer"}},
			{Name: "base"},
			{Name: "indexer", DependsOn: []string{"base"}},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"base", "indexer", "proxy"}, names(reg.StartOrder()))
	})

	t.Run("independent units keep declaration order", func(t *testing.T) {
		reg, err := New([]Unit{
			{Name: "c"},
			{Name: "a"},
			{Name: "b"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"c", "a", "b"}, names(reg.StartOrder()))
	})

	t.Run("order is deterministic across calls", func(t *testing.T) {
		reg, err := New([]Unit{
			{Name: "z"},
			{Name: "m", DependsOn: []string{"z"}},
			{Name: "a", DependsOn: []string{"z"}},
		})
		require.NoError(t, err)

		first := names(reg.StartOrder())
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, names(reg.StartOrder()))
		}
	})
}

func TestNew_Validation(t *testing.T) {
	t.Run("rejects empty name", func(t *testing.T) {
		_, err := New([]Unit{{Name: ""}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty name")
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := New([]Unit{{Name: "x"}, {Name: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects unknown dependency", func(t *testing.T) {
		_, err := New([]Unit{{Name: "a", DependsOn: []string{"ghost"}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown unit")
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("rejects dependency cycle", func(t *testing.T) {
		_, err := New([]Unit{
			{Name: "a", DependsOn: []string{"b"}},
			{Name: "b", DependsOn: []string{"a"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
	})

	t.Run("rejects self dependency", func(t *testing.T) {
		_, err := New([]Unit{{Name: "a", DependsOn: []string{"a"}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
	})
}

func TestStopOrder_ExactReverseOfStartOrder(t *testing.T) {
	reg, err := New([]Unit{
		{Name: "base"},
		{Name: "indexer", DependsOn: []string{"base"}},
		{Name: "app"},
		{Name: "proxy", DependsOn: []string{"indexer", "app"}},
	})
	require.NoError(t, err)

	start := names(reg.StartOrder())
	stop := names(reg.StopOrder())
	require.Len(t, stop, len(start))
	for i := range start {
		assert.Equal(t, start[i], stop[len(stop)-1-i])
	}
}

func TestLookup(t *testing.T) {
	reg, err := New([]Unit{{Name: "a"}, {Name: "b"}})
	require.NoError(t, err)

	u, ok := reg.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "b", u.Name)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	reg, err := Default("/opt/homelab")
	require.NoError(t, err)

	order := names(reg.StartOrder())
	require.Len(t, order, 8)

	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n] = i
	}

	assert.Less(t, pos["bitcoin"], pos["mempool"], "mempool needs the bitcoin node")
	assert.Equal(t, len(order)-1, pos["proxy"], "proxy fronts everything, so it starts last")
	assert.Equal(t, "proxy", names(reg.StopOrder())[0], "proxy stops first")

	bitcoin, ok := reg.Lookup("bitcoin")
	require.True(t, ok)
	assert.Equal(t, GroupedStack, bitcoin.Kind)
	require.NotNil(t, bitcoin.HealthProbe)
	assert.Equal(t, "bitcoind", bitcoin.HealthProbe.ContainerMatch)
	assert.Equal(t, "(healthy)", bitcoin.HealthProbe.HealthyMarker,
		"bare \"healthy\" would also match Docker's (unhealthy) status text")

	jellyfin, ok := reg.Lookup("jellyfin")
	require.True(t, ok)
	assert.Equal(t, StandaloneService, jellyfin.Kind)
	assert.Nil(t, jellyfin.HealthProbe)
	assert.Contains(t, jellyfin.DefinitionRef, "/opt/homelab")
}
