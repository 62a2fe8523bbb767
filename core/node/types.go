package node

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidToken is returned when the node rejects the API token.
	ErrInvalidToken = errors.New("node rejected api token")

	// ErrNodeResponse is returned when the node answers with status "error".
	ErrNodeResponse = errors.New("node returned an error")

	// ErrMalformedResponse is returned when the response cannot be parsed.
	ErrMalformedResponse = errors.New("malformed node response")
)

// Node describes how to reach one DNS node.
type Node struct {
	// ID is the stable identifier used across the cluster.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// URL is the base URL of the node's web API (e.g. "http://10.0.0.2:5380").
	URL string `json:"url"`

	// Token is the API token. It is never serialised.
	Token string `json:"-"`
}

// DisplayName returns Name, falling back to ID.
func (n Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Options holds the node API settings shared by all nodes of a cluster.
type Options struct {
	// Timeout bounds a single request.
	Timeout time.Duration

	// LogAppName and LogAppClassPath select the query log app on the node.
	LogAppName      string
	LogAppClassPath string

	// BlockingAppName selects the blocking app whose config holds the groups.
	BlockingAppName string
}

// LogFilter narrows a query log request on the node side.
type LogFilter struct {
	Start         time.Time
	End           time.Time
	ClientAddress string
	QueryName     string
	ResponseType  string
}

// Lease is a DHCP lease known to a node.
type Lease struct {
	Scope           string    `json:"scope"`
	Type            string    `json:"type"`
	HardwareAddress string    `json:"hardware_address"`
	Address         string    `json:"address"`
	HostName        string    `json:"host_name"`
	LeaseExpires    time.Time `json:"lease_expires"`
}

// FetchError describes a failed call against a node.
type FetchError struct {
	NodeID     string
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("node %s: %s: http %d: %v", e.NodeID, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("node %s: %s: %v", e.NodeID, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
