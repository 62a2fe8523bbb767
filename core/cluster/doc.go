// Package cluster holds the configuration of the DNS cluster facade.
//
// It translates environment settings into node client options and
// reconciliation engine options, and parses the CLUSTER_NODES registry seed:
//
//	CLUSTER_NODES="ns1=http://10.0.0.2:5380|tok1,ns2=http://10.0.0.3:5380|tok2"
package cluster
