package tailnet

import (
	"tailscale.com/client/local"
)

// NewLocalClient returns a StatusClient backed by the real tailscaled
// LocalAPI socket. An empty socketPath uses the platform default.
func NewLocalClient(socketPath string) StatusClient {
	lc := &local.Client{}
	if socketPath != "" {
		lc.Socket = socketPath
	}
	return lc
}
