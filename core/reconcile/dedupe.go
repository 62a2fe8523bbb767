package reconcile

import "time"

// dedupeKey identifies queries that are considered the same event.
type dedupeKey struct {
	queryName     string
	clientAddress string
	responseType  string
	blocked       bool
}

func keyOf(e *rankedEntry) dedupeKey {
	return dedupeKey{
		queryName:     e.QueryName,
		clientAddress: e.ClientAddress,
		responseType:  e.ResponseType,
		blocked:       e.Blocked,
	}
}

// suppressDuplicates removes duplicate entries from the sources in place and
// returns how many were removed.
//
// Entries are walked in global order. The first entry of a key becomes the
// representative; later entries within the coalescing window of it are
// suppressed, and the first one outside the window starts a new group. A node
// that loses every entry while another node keeps some gets its newest
// suppressed entry back, so deduplication never erases a node from the view.
func suppressDuplicates(sources []*nodeSource, opts LogOptions) int {
	representatives := make(map[dedupeKey]time.Time)
	kept := make(map[string][]rankedEntry, len(sources))
	dropped := make(map[string][]rankedEntry, len(sources))

	for _, e := range mergeAll(sources) {
		key := keyOf(e)
		if rep, ok := representatives[key]; ok && rep.Sub(e.Timestamp) <= opts.CoalesceWindow {
			dropped[e.NodeID] = append(dropped[e.NodeID], *e)
			continue
		}
		representatives[key] = e.Timestamp
		kept[e.NodeID] = append(kept[e.NodeID], *e)
	}

	survivors := 0
	for _, src := range sources {
		if len(kept[src.id]) > 0 {
			survivors++
		}
	}

	suppressed := 0
	for _, src := range sources {
		entries, lost := kept[src.id], dropped[src.id]
		if len(entries) == 0 && len(lost) > 0 && survivors > 0 {
			entries = lost[:1]
			lost = lost[1:]
		}
		src.entries = entries
		suppressed += len(lost)
	}

	return suppressed
}
