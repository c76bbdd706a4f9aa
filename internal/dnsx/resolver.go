// Package dnsx performs the raw DNS queries behind the domain analyzers.
// It deliberately collapses every failure mode (NXDOMAIN, no answer,
// timeout, SERVFAIL) into a not-found result: for the scoring heuristics
// an unreachable record and an absent record mean the same thing. The
// failure cause survives only in the logs.
package dnsx

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
	"golang.org/x/sync/semaphore"
)

// RecordType selects which DNS record family to query.
type RecordType string

const (
	TypeMX  RecordType = "MX"
	TypeTXT RecordType = "TXT"
)

// Result is the outcome of a single lookup. Records holds the raw record
// strings in resolver order: MX entries as "<preference> <exchange>." and
// TXT entries with the character-string fragments of each record joined.
type Result struct {
	Type    RecordType `json:"record_type"`
	Records []string   `json:"records"`
	Found   bool       `json:"found"`
}

// Resolver is the query surface the analyzers depend on. The production
// implementation is Client; tests use MockResolver.
type Resolver interface {
	Lookup(ctx context.Context, name string, rt RecordType) Result
}

// ClientConfig configures the production resolver.
type ClientConfig struct {
	// Nameservers to query, "host:port". Defaults to /etc/resolv.conf
	// with public DNS as a fallback.
	Nameservers []string

	// Timeout bounds each individual query. Default 5s.
	Timeout time.Duration

	// MaxInFlight caps concurrent queries across all callers sharing this
	// client. A single analysis fans out into up to 14 selector probes
	// plus the three direct record queries, so the cap must stay above
	// that. Default 32.
	MaxInFlight int
}

// Client resolves records via github.com/miekg/dns. Safe for concurrent use.
type Client struct {
	nameservers []string
	timeout     time.Duration
	client      *mdns.Client
	sem         *semaphore.Weighted
}

// NewClient builds a resolver from the given configuration, filling in
// defaults for any zero field.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 32
	}
	if len(cfg.Nameservers) == 0 {
		cfg.Nameservers = systemNameservers()
	}

	return &Client{
		nameservers: cfg.Nameservers,
		timeout:     cfg.Timeout,
		client:      &mdns.Client{Timeout: cfg.Timeout},
		sem:         semaphore.NewWeighted(int64(cfg.MaxInFlight)),
	}
}

// systemNameservers reads resolv.conf, falling back to public resolvers.
func systemNameservers() []string {
	conf, err := mdns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}
	}

	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		if !strings.Contains(s, ":") {
			s += ":53"
		}
		servers = append(servers, s)
	}
	return servers
}

// Lookup issues one query for name. It does not retry: a failed or timed-out
// query falls over to the next configured nameserver once, and if none
// answers the result is simply not-found. Availability retries belong to
// the caller, not here.
func (c *Client) Lookup(ctx context.Context, name string, rt RecordType) Result {
	res := Result{Type: rt}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		slog.Warn("dns lookup cancelled before dispatch", "name", name, "type", rt, "error", err)
		return res
	}
	defer c.sem.Release(1)

	m := new(mdns.Msg)
	m.SetQuestion(mdns.Fqdn(name), qtype(rt))
	m.RecursionDesired = true

	qctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	for _, server := range c.nameservers {
		resp, _, err := c.client.ExchangeContext(qctx, m, server)
		if err != nil {
			slog.Warn("dns query failed", "name", name, "type", rt, "server", server, "error", err)
			continue
		}

		switch resp.Rcode {
		case mdns.RcodeSuccess:
			res.Records = extract(resp, rt)
			res.Found = len(res.Records) > 0
			if !res.Found {
				slog.Debug("dns no answer", "name", name, "type", rt)
			}
			return res
		case mdns.RcodeNameError:
			// NXDOMAIN: a normal, meaningful absence.
			slog.Debug("dns name not found", "name", name, "type", rt)
			return res
		default:
			slog.Warn("dns query rejected", "name", name, "type", rt,
				"server", server, "rcode", mdns.RcodeToString[resp.Rcode])
			continue
		}
	}

	return res
}

func qtype(rt RecordType) uint16 {
	if rt == TypeMX {
		return mdns.TypeMX
	}
	return mdns.TypeTXT
}

func extract(resp *mdns.Msg, rt RecordType) []string {
	var records []string
	for _, rr := range resp.Answer {
		switch rec := rr.(type) {
		case *mdns.MX:
			if rt == TypeMX {
				records = append(records, fmt.Sprintf("%d %s", rec.Preference, rec.Mx))
			}
		case *mdns.TXT:
			if rt == TypeTXT {
				// One TXT record may be split into several character
				// strings; they are fragments of a single value (RFC 7208
				// section 3.3).
				records = append(records, strings.Join(rec.Txt, ""))
			}
		}
	}
	return records
}
