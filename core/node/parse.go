package node

import (
	"fmt"
	"sort"
	"strings"

	"dns-fleet/core/reconcile"
	"dns-fleet/core/utils"

	"github.com/valyala/fastjson"
)

// Node API envelope statuses.
const (
	statusOK           = "ok"
	statusError        = "error"
	statusInvalidToken = "invalid-token"
)

// parseEnvelope parses a node response and returns its "response" member.
// The returned value is owned by p.
func parseEnvelope(p *fastjson.Parser, body []byte) (*fastjson.Value, error) {
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch status := string(v.GetStringBytes("status")); status {
	case statusOK:
		response := v.Get("response")
		if response == nil {
			return nil, fmt.Errorf("%w: missing response member", ErrMalformedResponse)
		}
		return response, nil
	case statusInvalidToken:
		return nil, ErrInvalidToken
	case statusError:
		return nil, fmt.Errorf("%w: %s", ErrNodeResponse, v.GetStringBytes("errorMessage"))
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrMalformedResponse, status)
	}
}

// parseLogEntries converts the query log page into entries, newest first.
// Entries without a valid timestamp are skipped and counted.
func parseLogEntries(response *fastjson.Value, nodeID string) ([]reconcile.LogEntry, int) {
	rows := response.GetArray("entries")
	entries := make([]reconcile.LogEntry, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		ts, ok := utils.ToTime(row.Get("timestamp"))
		if !ok {
			skipped++
			continue
		}
		responseType := utils.ToString(row.Get("responseType"))
		entries = append(entries, reconcile.LogEntry{
			Timestamp:     ts,
			QueryName:     strings.TrimSuffix(utils.ToString(row.Get("qname")), "."),
			ClientAddress: utils.ToString(row.Get("clientIpAddress")),
			ResponseType:  responseType,
			Blocked:       isBlocked(responseType),
			NodeID:        nodeID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, skipped
}

// isBlocked reports whether a response type denotes a blocked answer
// ("Blocked", "UpstreamBlocked", "CacheBlocked", ...).
func isBlocked(responseType string) bool {
	return strings.Contains(strings.ToLower(responseType), "blocked")
}

// parseBlockingConfig extracts the blocking groups from an app config response.
// The config is usually a JSON document encoded as a string; cp parses it.
func parseBlockingConfig(cp *fastjson.Parser, response *fastjson.Value) ([]reconcile.BlockingGroup, error) {
	cfg := response.Get("config")
	if cfg == nil || cfg.Type() == fastjson.TypeNull {
		return []reconcile.BlockingGroup{}, nil
	}

	if cfg.Type() == fastjson.TypeString {
		raw := cfg.GetStringBytes()
		if len(strings.TrimSpace(string(raw))) == 0 {
			return []reconcile.BlockingGroup{}, nil
		}
		parsed, err := cp.ParseBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: app config: %v", ErrMalformedResponse, err)
		}
		cfg = parsed
	}

	items := cfg.GetArray("groups")
	groups := make([]reconcile.BlockingGroup, 0, len(items))
	for i, g := range items {
		name := strings.TrimSpace(utils.ToString(g.Get("name")))
		if name == "" {
			return nil, fmt.Errorf("%w: group %d has no name", ErrMalformedResponse, i)
		}
		groups = append(groups, reconcile.BlockingGroup{
			Name:                   name,
			EnableBlocking:         utils.ToBool(g.Get("enableBlocking")),
			AllowTxtBlockingReport: utils.ToBool(g.Get("allowTxtBlockingReport")),
			BlockAsNxDomain:        utils.ToBool(g.Get("blockAsNxDomain")),
			BlockingAddresses:      utils.ToStrings(g.Get("blockingAddresses")),
			Allowed:                utils.ToStrings(g.Get("allowed")),
			Blocked:                utils.ToStrings(g.Get("blocked")),
			AllowListUrls:          urlList(g.Get("allowListUrls")),
			BlockListUrls:          urlList(g.Get("blockListUrls")),
			AllowedRegex:           utils.ToStrings(g.Get("allowedRegex")),
			BlockedRegex:           utils.ToStrings(g.Get("blockedRegex")),
			RegexAllowListUrls:     urlList(g.Get("regexAllowListUrls")),
			RegexBlockListUrls:     urlList(g.Get("regexBlockListUrls")),
			AdblockListUrls:        urlList(g.Get("adblockListUrls")),
		})
	}
	return groups, nil
}

// urlList reads a list of URLs. Newer nodes send objects ({"url": ...})
// instead of plain strings.
func urlList(v *fastjson.Value) []string {
	if v == nil || v.Type() != fastjson.TypeArray {
		return nil
	}
	arr, _ := v.Array()
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		var s string
		if item.Type() == fastjson.TypeObject {
			s = utils.ToString(item.Get("url"))
		} else {
			s = utils.ToString(item)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseLeases converts the lease list response.
func parseLeases(response *fastjson.Value) []Lease {
	rows := response.GetArray("leases")
	leases := make([]Lease, 0, len(rows))
	for _, row := range rows {
		expires, _ := utils.ToTime(row.Get("leaseExpires"))
		leases = append(leases, Lease{
			Scope:           utils.ToString(row.Get("scope")),
			Type:            utils.ToString(row.Get("type")),
			HardwareAddress: utils.ToString(row.Get("hardwareAddress")),
			Address:         utils.ToString(row.Get("address")),
			HostName:        strings.TrimSuffix(utils.ToString(row.Get("hostName")), "."),
			LeaseExpires:    expires,
		})
	}
	return leases
}
