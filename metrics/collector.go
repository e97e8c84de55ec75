// Package metrics exports the statistics of a bptree.Tree as Prometheus
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexhholmes/bptree"
)

// Source is what the collector reads on every scrape. *bptree.Tree
// satisfies it; callers sharing a tree across goroutines pass a wrapper that
// takes their lock.
type Source interface {
	Stats() bptree.Stats
	Len() int
	Height() int
}

const namespace = "bptree"

// Collector is a prometheus.Collector reading a Source at scrape time.
type Collector struct {
	source Source

	inserts       *prometheus.Desc
	removes       *prometheus.Desc
	splits        *prometheus.Desc
	borrows       *prometheus.Desc
	merges        *prometheus.Desc
	rootGrows     *prometheus.Desc
	rootCollapses *prometheus.Desc
	keys          *prometheus.Desc
	height        *prometheus.Desc
}

// NewCollector creates a collector for source. constLabels are attached to
// every metric, so several trees can be registered side by side.
func NewCollector(source Source, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, constLabels)
	}
	return &Collector{
		source:        source,
		inserts:       desc("inserts_total", "Keys inserted."),
		removes:       desc("removes_total", "Keys removed."),
		splits:        desc("splits_total", "Node splits by level.", "level"),
		borrows:       desc("borrows_total", "Keys borrowed from a sibling by level.", "level"),
		merges:        desc("merges_total", "Sibling merges by level.", "level"),
		rootGrows:     desc("root_grows_total", "Times the tree grew a level."),
		rootCollapses: desc("root_collapses_total", "Times the tree lost a level."),
		keys:          desc("keys", "Keys currently stored, duplicates included."),
		height:        desc("height", "Current number of levels."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inserts
	ch <- c.removes
	ch <- c.splits
	ch <- c.borrows
	ch <- c.merges
	ch <- c.rootGrows
	ch <- c.rootCollapses
	ch <- c.keys
	ch <- c.height
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	keys := c.source.Len()
	height := c.source.Height()

	counter := func(desc *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), labels...)
	}
	counter(c.inserts, stats.Inserts)
	counter(c.removes, stats.Removes)
	counter(c.splits, stats.LeafSplits, "leaf")
	counter(c.splits, stats.IndexSplits, "index")
	counter(c.borrows, stats.LeafBorrows, "leaf")
	counter(c.borrows, stats.IndexBorrows, "index")
	counter(c.merges, stats.LeafMerges, "leaf")
	counter(c.merges, stats.IndexMerges, "index")
	counter(c.rootGrows, stats.RootGrows)
	counter(c.rootCollapses, stats.RootCollapses)

	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(keys))
	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(height))
}
