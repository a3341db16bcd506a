package analytics

import (
	"sort"
	"time"

	"github.com/iksnae/chatlens/internal"
)

// initiationGap is the quiet period after which the next message counts as
// a fresh conversation initiation.
const initiationGap = time.Hour

// analyzeNetwork builds the directed response graph and its metrics. Every
// adjacent pair of messages with different senders adds weight 1 from the
// later sender to the earlier one: the reply runs toward the message it
// answers. Degenerate inputs return a zeroed result, never an error.
func analyzeNetwork(conv *internal.Conversation) NetworkResult {
	res := NetworkResult{Available: true}

	// Weighted directed adjacency keyed by responder -> responded-to.
	edges := map[string]map[string]int{}
	in := map[string]int{}
	out := map[string]int{}

	for i := 1; i < len(conv.Messages); i++ {
		prev := conv.Messages[i-1].Sender
		curr := conv.Messages[i].Sender
		if prev == curr {
			continue
		}
		if edges[curr] == nil {
			edges[curr] = map[string]int{}
		}
		edges[curr][prev]++
		out[curr]++
		in[prev]++
	}

	ids := conv.ParticipantIDs()
	n := len(ids)

	edgeCount := 0
	for from, tos := range edges {
		for to, w := range tos {
			res.Edges = append(res.Edges, Edge{From: from, To: to, Weight: w})
			edgeCount++
		}
	}
	sort.Slice(res.Edges, func(i, j int) bool {
		if res.Edges[i].From != res.Edges[j].From {
			return res.Edges[i].From < res.Edges[j].From
		}
		return res.Edges[i].To < res.Edges[j].To
	})

	if n >= 2 {
		res.Density = float64(edgeCount) / float64(n*(n-1))
	}

	for _, id := range ids {
		res.Nodes = append(res.Nodes, Node{
			ID:          id,
			InDegree:    in[id],
			OutDegree:   out[id],
			TotalDegree: in[id] + out[id],
		})
	}

	res.MostCentral = argmaxNode(ids, func(id string) int { return in[id] + out[id] })
	res.MostRespondedTo = argmaxNode(ids, func(id string) int { return in[id] })
	res.MostResponsive = argmaxNode(ids, func(id string) int { return out[id] })

	res.Communities = detectCommunities(ids, edges)
	res.NumCommunities = len(res.Communities)

	res.Initiations = countInitiations(conv)
	return res
}

// argmaxNode picks the participant with the highest score. Ties resolve to
// the lexicographically smaller id so results stay deterministic. Returns
// "" when no participant has a positive score.
func argmaxNode(ids []string, score func(string) int) string {
	best := ""
	bestScore := 0
	for _, id := range ids { // ids are sorted
		if s := score(id); s > bestScore {
			best = id
			bestScore = s
		}
	}
	return best
}

// countInitiations attributes the first message and every message after a
// gap of at least initiationGap to its sender.
func countInitiations(conv *internal.Conversation) map[string]int {
	if len(conv.Messages) == 0 {
		return nil
	}
	inits := map[string]int{conv.Messages[0].Sender: 1}
	for i := 1; i < len(conv.Messages); i++ {
		gap := conv.Messages[i].Timestamp.Sub(conv.Messages[i-1].Timestamp)
		if gap >= initiationGap {
			inits[conv.Messages[i].Sender]++
		}
	}
	return inits
}

// detectCommunities greedily merges communities over the weighted
// undirected projection of the graph while modularity improves, the same
// agglomerative scheme used by greedy modularity maximization. Isolated
// participants each form their own community.
func detectCommunities(ids []string, directed map[string]map[string]int) [][]string {
	if len(ids) == 0 {
		return nil
	}

	// Undirected projection: sum weights in both directions.
	und := map[string]map[string]float64{}
	addW := func(a, b string, w float64) {
		if und[a] == nil {
			und[a] = map[string]float64{}
		}
		und[a][b] += w
	}
	var m float64 // total undirected edge weight
	for from, tos := range directed {
		for to, w := range tos {
			addW(from, to, float64(w))
			addW(to, from, float64(w))
			m += float64(w)
		}
	}

	// Each node starts in its own community.
	comms := make([][]string, len(ids))
	for i, id := range ids {
		comms[i] = []string{id}
	}
	if m == 0 {
		return comms
	}

	degree := map[string]float64{}
	for a, bs := range und {
		for _, w := range bs {
			degree[a] += w
		}
	}

	commWeight := func(a, b []string) float64 {
		var w float64
		for _, x := range a {
			for _, y := range b {
				w += und[x][y]
			}
		}
		return w
	}
	commDegree := func(c []string) float64 {
		var d float64
		for _, x := range c {
			d += degree[x]
		}
		return d
	}

	for len(comms) > 1 {
		bestI, bestJ := -1, -1
		bestDelta := 0.0
		for i := 0; i < len(comms); i++ {
			for j := i + 1; j < len(comms); j++ {
				eij := commWeight(comms[i], comms[j])
				delta := eij/(2*m) - commDegree(comms[i])*commDegree(comms[j])/(2*m*2*m)
				if delta > bestDelta {
					bestDelta = delta
					bestI, bestJ = i, j
				}
			}
		}
		if bestI < 0 {
			break
		}
		merged := append(append([]string{}, comms[bestI]...), comms[bestJ]...)
		sort.Strings(merged)
		next := make([][]string, 0, len(comms)-1)
		for k, c := range comms {
			if k != bestI && k != bestJ {
				next = append(next, c)
			}
		}
		comms = append(next, merged)
	}

	sort.Slice(comms, func(i, j int) bool { return comms[i][0] < comms[j][0] })
	return comms
}
