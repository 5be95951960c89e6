// pkg/registry/units.go

package registry

import "path/filepath"

// Networks declared by the default topology. Created idempotently on start,
// removable on stop with --remove-networks.
var Networks = []string{"crypto-network", "media-network"}

// Default returns the fixed homelab topology. root is the directory holding
// the per-unit compose definitions.
//
// Ordering constraints encoded here: mempool (electrs + explorer) builds on
// the bitcoin node, and the reverse proxy fronts everything, so it is always
// last up and first down. Media services are independent of the crypto
// stacks; their relative order is just declaration order.
func Default(root string) (*Registry, error) {
	def := func(parts ...string) string {
		return filepath.Join(append([]string{root}, parts...)...)
	}

	return New([]Unit{
		{
			Name:          "bitcoin",
			Kind:          GroupedStack,
			Category:      CategoryCrypto,
			DefinitionRef: def("bitcoin", "docker-compose.yml"),
			HealthProbe:   &Probe{ContainerMatch: "bitcoind", HealthyMarker: "(healthy)"},
		},
		{
			Name:          "mempool",
			Kind:          GroupedStack,
			Category:      CategoryCrypto,
			DefinitionRef: def("mempool", "docker-compose.yml"),
			DependsOn:     []string{"bitcoin"},
			HealthProbe:   &Probe{ContainerMatch: "mempool", HealthyMarker: "(healthy)"},
		},
		{
			Name:          "jackett",
			Kind:          StandaloneService,
			Category:      CategoryMedia,
			DefinitionRef: def("media", "jackett.yml"),
		},
		{
			Name:          "qbittorrent",
			Kind:          StandaloneService,
			Category:      CategoryMedia,
			DefinitionRef: def("media", "qbittorrent.yml"),
		},
		{
			Name:          "sonarr",
			Kind:          StandaloneService,
			Category:      CategoryMedia,
			DefinitionRef: def("media", "sonarr.yml"),
		},
		{
			Name:          "radarr",
			Kind:          StandaloneService,
			Category:      CategoryMedia,
			DefinitionRef: def("media", "radarr.yml"),
		},
		{
			Name:          "jellyfin",
			Kind:          StandaloneService,
			Category:      CategoryMedia,
			DefinitionRef: def("media", "jellyfin.yml"),
		},
		{
			Name:          "proxy",
			Kind:          StandaloneService,
			Category:      CategoryProxy,
			DefinitionRef: def("proxy", "docker-compose.yml"),
			DependsOn: []string{
				"bitcoin", "mempool",
				"jackett", "qbittorrent", "sonarr", "radarr", "jellyfin",
			},
		},
	})
}
