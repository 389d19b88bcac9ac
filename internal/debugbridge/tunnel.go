package debugbridge

import (
	"context"
	"net/http"

	"golang.ngrok.com/ngrok"
	"golang.ngrok.com/ngrok/config"
)

// serveViaTunnel exposes srv's handler through an ngrok HTTP tunnel, so a
// renderer debugging session can be shared with a remote collaborator
// without port-forwarding.
func (b *Bridge) serveViaTunnel(srv *http.Server) error {
	ctx := context.Background()

	opts := []ngrok.ConnectOption{ngrok.WithAuthtoken(b.cfg.Tunnel.AuthToken)}
	ln, err := ngrok.Listen(ctx, config.HTTPEndpoint(), opts...)
	if err != nil {
		return err
	}
	defer ln.Close()

	return srv.Serve(ln)
}
