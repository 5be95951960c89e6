// pkg/compose/definition.go

package compose

import (
	"context"
	"path/filepath"
	"strings"

	composecli "github.com/compose-spec/compose-go/v2/cli"
	cerr "github.com/cockroachdb/errors"
)

// Definition is a parsed view of one unit's compose file: the service and
// container names it declares. Used by the status reporter to know what to
// look for without asking the daemon.
type Definition struct {
	Project    string
	Services   []string
	Containers []string
}

// LoadDefinition parses a compose file with the compose-go loader. The
// project name defaults to the directory name, matching what the compose CLI
// itself does.
func LoadDefinition(ctx context.Context, path string) (*Definition, error) {
	projectName := normalizeProjectName(filepath.Base(filepath.Dir(path)))

	options, err := composecli.NewProjectOptions(
		[]string{path},
		composecli.WithOsEnv,
		composecli.WithName(projectName),
	)
	if err != nil {
		return nil, cerr.Wrapf(err, "failed to create project options for %s", path)
	}

	project, err := options.LoadProject(ctx)
	if err != nil {
		return nil, cerr.Wrapf(err, "failed to load compose project %s", path)
	}

	def := &Definition{Project: project.Name}
	for _, svc := range project.Services {
		def.Services = append(def.Services, svc.Name)
		container := svc.ContainerName
		if container == "" {
			// Compose names containers <project>-<service>-<index>.
			container = project.Name + "-" + svc.Name + "-1"
		}
		def.Containers = append(def.Containers, container)
	}
	return def, nil
}

// normalizeProjectName applies compose's project-name restrictions: lowercase
// alphanumerics, dashes and underscores.
func normalizeProjectName(name string) string {
	name = strings.ToLower(name)
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	return sb.String()
}
