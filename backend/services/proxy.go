// ABOUTME: SSH+SOCKS5 dialer for reaching vCenter through a jumpbox
// ABOUTME: Parses ssh+socks5://user@host:port?private-key=/path URLs

package services

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cloudfoundry/socks5-proxy"
)

// DialContextFunc matches http.Transport.DialContext
type DialContextFunc func(ctx context.Context, network, address string) (net.Conn, error)

// NewSOCKS5DialContextFunc creates a dial function for SSH+SOCKS5 proxy connections.
// The SSH tunnel is opened on first dial and reused afterwards.
func NewSOCKS5DialContextFunc(allProxy string) (DialContextFunc, error) {
	allProxy = strings.TrimPrefix(allProxy, "ssh+")

	proxyURL, err := url.Parse(allProxy)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy URL: %w", err)
	}
	if proxyURL.Scheme != "socks5" {
		return nil, fmt.Errorf("unsupported proxy scheme %q, expected ssh+socks5", proxyURL.Scheme)
	}
	if proxyURL.Host == "" {
		return nil, fmt.Errorf("proxy URL is missing a host")
	}

	username := ""
	if proxyURL.User != nil {
		username = proxyURL.User.Username()
	}

	keyPath := proxyURL.Query().Get("private-key")
	if keyPath == "" {
		return nil, fmt.Errorf("proxy URL missing required 'private-key' query param")
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("reading SSH private key %s: %w", keyPath, err)
	}

	socks5Proxy := proxy.NewSocks5Proxy(proxy.NewHostKey(), log.Default(), 1*time.Minute)

	var (
		dialer proxy.DialFunc
		mut    sync.RWMutex
	)

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		mut.RLock()
		d := dialer
		mut.RUnlock()

		if d != nil {
			return d(network, address)
		}

		mut.Lock()
		defer mut.Unlock()
		if dialer == nil {
			proxyDialer, err := socks5Proxy.Dialer(username, string(key), proxyURL.Host)
			if err != nil {
				return nil, fmt.Errorf("error creating SOCKS5 dialer: %w", err)
			}
			dialer = proxyDialer
		}
		return dialer(network, address)
	}, nil
}
