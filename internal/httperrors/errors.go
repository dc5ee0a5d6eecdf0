// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures into troubleshooting notices.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category classifies a transport failure.
type Category int

const (
	Generic Category = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
)

// Notice is the text shown to the user for a transport failure.
type Notice struct {
	Title string
	Lead  string
	Hints []string
}

// Classify inspects err and returns its category.
func Classify(err error) Category {
	if err == nil {
		return Generic
	}
	var netErr net.Error
	lower := strings.ToLower(err.Error())
	var dnsErr *net.DNSError
	var opErr *net.OpError

	switch {
	case errors.As(err, &dnsErr):
		return DNS
	case errors.As(err, &netErr) && netErr.Timeout(),
		strings.Contains(lower, "timeout"),
		strings.Contains(lower, "deadline exceeded"):
		return Timeout
	case errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED),
		strings.Contains(lower, "connection refused"):
		return ConnectionRefused
	case strings.Contains(lower, "tls"),
		strings.Contains(lower, "x509"),
		strings.Contains(lower, "certificate"),
		strings.Contains(lower, "handshake"):
		return TLS
	default:
		return Generic
	}
}

// Explain builds the notice for err. action completes "while ..."; host names
// the backend as configured.
func Explain(err error, action, host string) Notice {
	switch Classify(err) {
	case Timeout:
		return Notice{
			Title: fmt.Sprintf("Connection timeout while %s", action),
			Lead:  fmt.Sprintf("%s took too long to respond. This could mean:", host),
			Hints: []string{"Slow network connection", "The backend is under heavy load", "A firewall is dropping the connection"},
		}
	case DNS:
		return Notice{
			Title: fmt.Sprintf("Cannot resolve server address while %s", action),
			Lead:  fmt.Sprintf("Unable to look up %s. Please check:", host),
			Hints: []string{"The api_url in your taskdeck config", "Your network connection", "DNS settings"},
		}
	case ConnectionRefused:
		return Notice{
			Title: fmt.Sprintf("Connection refused while %s", action),
			Lead:  fmt.Sprintf("Nothing is accepting connections at %s. This could mean:", host),
			Hints: []string{"The Taskdeck backend is not running", "Wrong host or port in api_url", "A firewall is blocking the port"},
		}
	case TLS:
		return Notice{
			Title: fmt.Sprintf("Secure connection failed while %s", action),
			Lead:  fmt.Sprintf("Cannot establish HTTPS with %s. Try:", host),
			Hints: []string{"Check your system date and time", "Verify proxy settings", "Use http:// for a local development backend"},
		}
	default:
		return Notice{
			Title: fmt.Sprintf("Cannot reach the Taskdeck backend while %s", action),
			Lead:  "Please check:",
			Hints: []string{"Your network connection", fmt.Sprintf("Whether %s is reachable from this machine", host)},
		}
	}
}

// FormatNetworkError prints the notice for err and returns err wrapped for logging.
func FormatNetworkError(err error, action, apiURL string) error {
	if err == nil {
		return nil
	}
	n := Explain(err, action, ExtractHostFromURL(apiURL))
	pterm.Error.Println(n.Title)
	pterm.Println(n.Lead)
	for _, h := range n.Hints {
		pterm.Printf("  • %s\n", h)
	}
	pterm.Println()
	return fmt.Errorf("network error: %w", err)
}

// ExtractHostFromURL returns the host part of urlStr, or "server".
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
