package debugbridge

import (
	"net/http"
	"strings"

	"github.com/caddyserver/certmagic"
)

// serveViaCertmagic serves srv's handler behind certmagic's automatic TLS
// management. The listen address's host is used as the managed domain
// name; for a bare IP or localhost this relies on certmagic's configured
// issuer supporting it (e.g. an internal CA in an on-prem deployment) —
// debug-bridge TLS is an opt-in advanced setting, not the default path.
func (b *Bridge) serveViaCertmagic(srv *http.Server) error {
	host := srv.Addr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return certmagic.HTTPS([]string{host}, srv.Handler)
}
