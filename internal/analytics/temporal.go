package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/iksnae/chatlens/internal"
)

// analyzeTemporal computes rate statistics over the conversation timeline:
// bursts against the window-rate baseline, the single longest dormancy, and
// gap-based session segmentation. Empty conversations produce a zeroed,
// available result.
func analyzeTemporal(conv *internal.Conversation, cfg TemporalConfig) TemporalResult {
	res := TemporalResult{Available: true}
	msgs := conv.Messages
	if len(msgs) == 0 {
		return res
	}

	res.MessageCounts = map[string]int{}
	for i := range msgs {
		res.HourHistogram[msgs[i].Timestamp.Hour()]++
		res.MessageCounts[msgs[i].Sender]++
	}
	for h := 1; h < 24; h++ {
		if res.HourHistogram[h] > res.HourHistogram[res.BusiestHour] {
			res.BusiestHour = h
		}
	}

	res.Bursts = detectBursts(msgs, cfg.Window, cfg.BurstK)
	res.Dormancy = longestDormancy(msgs, cfg.DormancyThreshold)
	res.Sessions = segmentSessions(msgs, cfg.SessionGap)
	res.ResponseTimes = responseTimes(msgs)
	return res
}

// detectBursts slides a fixed window stepped by half its size across the
// conversation span and flags windows whose rate exceeds the mean by more
// than k standard deviations. Overlapping flagged windows merge into one
// burst whose rate is recomputed over the merged span.
func detectBursts(msgs []internal.Message, window time.Duration, k float64) []Burst {
	if len(msgs) < 2 || window <= 0 {
		return nil
	}
	first := msgs[0].Timestamp
	last := msgs[len(msgs)-1].Timestamp
	if !last.After(first) {
		return nil
	}

	step := window / 2
	type win struct {
		start time.Time
		count int
	}
	var wins []win
	for start := first; start.Before(last); start = start.Add(step) {
		end := start.Add(window)
		count := countBetween(msgs, start, end)
		wins = append(wins, win{start: start, count: count})
	}
	if len(wins) < 2 {
		return nil
	}

	rates := make([]float64, len(wins))
	var sum float64
	for i, w := range wins {
		rates[i] = float64(w.count) / window.Hours()
		sum += rates[i]
	}
	meanRate := sum / float64(len(rates))
	var variance float64
	for _, r := range rates {
		variance += (r - meanRate) * (r - meanRate)
	}
	std := math.Sqrt(variance / float64(len(rates)))
	if std == 0 {
		return nil
	}
	threshold := meanRate + k*std

	var bursts []Burst
	for i, w := range wins {
		if rates[i] <= threshold {
			continue
		}
		end := w.start.Add(window)
		if n := len(bursts); n > 0 && !w.start.After(bursts[n-1].End) {
			bursts[n-1].End = end
			continue
		}
		bursts = append(bursts, Burst{Start: w.start, End: end})
	}
	for i := range bursts {
		span := bursts[i].End.Sub(bursts[i].Start)
		bursts[i].Rate = float64(countBetween(msgs, bursts[i].Start, bursts[i].End)) / span.Hours()
	}
	return bursts
}

// countBetween counts messages with start <= ts < end. Messages are sorted,
// so binary search bounds the scan.
func countBetween(msgs []internal.Message, start, end time.Time) int {
	lo := sort.Search(len(msgs), func(i int) bool { return !msgs[i].Timestamp.Before(start) })
	hi := sort.Search(len(msgs), func(i int) bool { return !msgs[i].Timestamp.Before(end) })
	return hi - lo
}

// longestDormancy returns the single longest inter-message gap exceeding
// the threshold, or nil.
func longestDormancy(msgs []internal.Message, threshold time.Duration) *Dormancy {
	var best *Dormancy
	for i := 1; i < len(msgs); i++ {
		gap := msgs[i].Timestamp.Sub(msgs[i-1].Timestamp)
		if gap <= threshold {
			continue
		}
		if best == nil || gap > best.Duration {
			best = &Dormancy{
				Start:    msgs[i-1].Timestamp,
				End:      msgs[i].Timestamp,
				Duration: gap,
			}
		}
	}
	return best
}

// segmentSessions splits the sequence at every gap exceeding maxGap.
func segmentSessions(msgs []internal.Message, maxGap time.Duration) []Session {
	if len(msgs) == 0 {
		return nil
	}
	sessions := []Session{{Start: msgs[0].Timestamp, End: msgs[0].Timestamp, Count: 1}}
	for i := 1; i < len(msgs); i++ {
		gap := msgs[i].Timestamp.Sub(msgs[i-1].Timestamp)
		if gap > maxGap {
			sessions = append(sessions, Session{Start: msgs[i].Timestamp, End: msgs[i].Timestamp, Count: 1})
			continue
		}
		s := &sessions[len(sessions)-1]
		s.End = msgs[i].Timestamp
		s.Count++
	}
	return sessions
}

// responseTimes aggregates gaps between adjacent messages with different
// senders. Gaps of a day or more are re-engagement, not responses.
func responseTimes(msgs []internal.Message) *ResponseTimes {
	const cutoff = 24 * time.Hour
	var gaps []time.Duration
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Sender == msgs[i-1].Sender {
			continue
		}
		gap := msgs[i].Timestamp.Sub(msgs[i-1].Timestamp)
		if gap < cutoff {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return nil
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i] < gaps[j] })
	var sum time.Duration
	for _, g := range gaps {
		sum += g
	}
	return &ResponseTimes{
		Average:    sum / time.Duration(len(gaps)),
		Median:     gaps[len(gaps)/2],
		SampleSize: len(gaps),
	}
}
