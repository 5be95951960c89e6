// pkg/provision/nginx.go

package provision

import (
	"os"
	"strings"
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// websocketMapMarker identifies the websocket-upgrade map block; its
// presence means the file was already patched.
const websocketMapMarker = "map $http_upgrade $connection_upgrade"

const websocketMapBlock = `
    # Websocket upgrade handling for mempool and jellyfin
    map $http_upgrade $connection_upgrade {
        default upgrade;
        ''      close;
    }
`

const streamingHeadersMarker = "proxy_buffering off"

const streamingHeadersBlock = `
    # Streaming-friendly proxy defaults
    proxy_buffering off;
    proxy_request_buffering off;
    proxy_http_version 1.1;
    proxy_set_header Upgrade $http_upgrade;
    proxy_set_header Connection $connection_upgrade;
    proxy_read_timeout 3600s;
    proxy_send_timeout 3600s;
`

// PatchProxyConfig inserts the websocket-upgrade map and streaming proxy
// headers into the nginx config's http context, if not already present.
// The check is a content-substring test, so re-running is a no-op. Before
// rewriting, the previous file is saved to a timestamped backup.
func PatchProxyConfig(rc *opsio.RuntimeContext, path string) (docker.EnsureOutcome, error) {
	logger := otelzap.Ctx(rc.Ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", cerr.Wrapf(err, "failed to read proxy config %s", path)
	}
	content := string(data)

	needsMap := !strings.Contains(content, websocketMapMarker)
	needsHeaders := !strings.Contains(content, streamingHeadersMarker)
	if !needsMap && !needsHeaders {
		logger.Info("Proxy config already patched", zap.String("path", path))
		return docker.AlreadyExists, nil
	}

	backup := path + ".bak." + time.Now().Format("20060102_150405")
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return "", cerr.Wrapf(err, "failed to write backup %s", backup)
	}
	logger.Info("Backed up proxy config", zap.String("backup", backup))

	var insert strings.Builder
	if needsMap {
		insert.WriteString(websocketMapBlock)
	}
	if needsHeaders {
		insert.WriteString(streamingHeadersBlock)
	}

	patched, err := insertIntoHTTPContext(content, insert.String())
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(patched), 0644); err != nil {
		return "", cerr.Wrapf(err, "failed to write patched proxy config %s", path)
	}

	logger.Info("Patched proxy config",
		zap.String("path", path),
		zap.Bool("websocket_map", needsMap),
		zap.Bool("streaming_headers", needsHeaders))
	return docker.Created, nil
}

// insertIntoHTTPContext places block right after the opening of the http
// context so the directives apply to every server block.
func insertIntoHTTPContext(content, block string) (string, error) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "http {") ||
			strings.TrimSpace(line) == "http{" {
			out := make([]string, 0, len(lines)+1)
			out = append(out, lines[:i+1]...)
			out = append(out, strings.TrimRight(block, "\n"))
			out = append(out, lines[i+1:]...)
			return strings.Join(out, "\n"), nil
		}
	}
	return "", cerr.New("proxy config has no http context to patch")
}
