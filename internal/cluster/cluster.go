// Package cluster groups mutually similar submissions. The comparison set
// is read as an undirected weighted graph (nodes: submissions, edge weight:
// average similarity); clusters are the connected components after dropping
// edges below the threshold.
package cluster

import (
	"sort"

	"github.com/veridex/crosscheck/internal/compare"
)

// Cluster is one group of submissions similar enough, directly or
// transitively, to warrant joint review.
type Cluster struct {
	// Members holds the submission names, sorted.
	Members []string

	// Strength is the mean weight of all graph edges between members,
	// including edges below the threshold: two members linked only
	// transitively still contribute their real pairwise similarity.
	Strength float64
}

// Contains reports whether the cluster includes the named submission.
func (c Cluster) Contains(name string) bool {
	for _, m := range c.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Build partitions the comparison graph into clusters. Submissions with no
// edge at or above the threshold stay singletons and are omitted. Output is
// independent of comparison enumeration order: membership comes from
// union-find over the thresholded edges and all orderings are by name.
func Build(comparisons []*compare.Comparison, threshold float64) []Cluster {
	uf := newUnionFind()
	type edge struct {
		a, b   string
		weight float64
	}
	var edges []edge

	for _, c := range comparisons {
		a, b := c.A.Name, c.B.Name
		if b < a {
			a, b = b, a
		}
		weight := c.Similarity()
		edges = append(edges, edge{a: a, b: b, weight: weight})
		uf.add(a)
		uf.add(b)
		if weight >= threshold {
			uf.union(a, b)
		}
	}

	members := make(map[string][]string)
	for _, name := range uf.names() {
		root := uf.find(name)
		members[root] = append(members[root], name)
	}

	var clusters []Cluster
	for _, group := range members {
		if len(group) < 2 {
			continue
		}
		sort.Strings(group)
		inGroup := make(map[string]struct{}, len(group))
		for _, name := range group {
			inGroup[name] = struct{}{}
		}
		sum, count := 0.0, 0
		for _, e := range edges {
			if _, okA := inGroup[e.a]; !okA {
				continue
			}
			if _, okB := inGroup[e.b]; !okB {
				continue
			}
			sum += e.weight
			count++
		}
		strength := 0.0
		if count > 0 {
			strength = sum / float64(count)
		}
		clusters = append(clusters, Cluster{Members: group, Strength: strength})
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].Strength != clusters[j].Strength {
			return clusters[i].Strength > clusters[j].Strength
		}
		return clusters[i].Members[0] < clusters[j].Members[0]
	})
	return clusters
}

// unionFind is a by-name disjoint-set forest with path compression.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string), rank: make(map[string]int)}
}

func (u *unionFind) add(name string) {
	if _, ok := u.parent[name]; !ok {
		u.parent[name] = name
	}
}

func (u *unionFind) find(name string) string {
	for u.parent[name] != name {
		u.parent[name] = u.parent[u.parent[name]]
		name = u.parent[name]
	}
	return name
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

func (u *unionFind) names() []string {
	names := make([]string, 0, len(u.parent))
	for name := range u.parent {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
