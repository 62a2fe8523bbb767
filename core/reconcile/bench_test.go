package reconcile

import (
	"fmt"
	"testing"
	"time"
)

func benchGroups(groups, entries int, variant string) []BlockingGroup {
	out := make([]BlockingGroup, groups)
	for g := range out {
		domains := make([]string, entries)
		urls := make([]string, entries)
		for i := range domains {
			// Reverse order on one side so sorting does real work.
			n := i
			if variant == "b" {
				n = entries - 1 - i
			}
			domains[i] = fmt.Sprintf("host%05d.group%02d.example.com", n, g)
			urls[i] = fmt.Sprintf("https://lists.example.net/%02d/%05d.txt", g, n)
		}
		out[g] = BlockingGroup{Name: fmt.Sprintf("group%02d", g), Blocked: domains, BlockListUrls: urls}
	}
	return out
}

func BenchmarkCompareConfigs_50x1000(b *testing.B) {
	a := benchGroups(50, 1000, "a")
	c := benchGroups(50, 1000, "b")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CompareConfigs(a, c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReconcile(b *testing.B) {
	for _, nodes := range []int{2, 8} {
		b.Run(fmt.Sprintf("nodes=%d", nodes), func(b *testing.B) {
			batches := make([]NodeBatch, nodes)
			for n := range batches {
				id := fmt.Sprintf("node%d", n)
				entries := make([]LogEntry, 5000)
				for i := range entries {
					entries[i] = LogEntry{
						Timestamp:     baseTime.Add(-time.Duration(i*(n+1)) * 50 * time.Millisecond),
						QueryName:     fmt.Sprintf("q%d.example.com", i%400),
						ClientAddress: fmt.Sprintf("10.0.%d.%d", n, i%50),
					}
				}
				batches[n] = NodeBatch{NodeID: id, Entries: entries}
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Reconcile(batches, 1000, true); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSimilarity(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Similarity("cdn-1234.tracking.example.com", "cdn-4321.tracking.example.net")
	}
}
