// Package analytics computes sentiment, relationship, temporal, and
// content-risk analytics over one immutable conversation snapshot.
package analytics

import "time"

// Reason codes recorded when a result section is unavailable.
const (
	ReasonDisabled      = "disabled_by_config"
	ReasonPanic         = "analyzer_panic"
	ReasonNoMessages    = "no_messages"
	ReasonRemoteFailure = "remote_failure"
)

// SentimentLabel is one of the five classification buckets.
type SentimentLabel string

const (
	VeryNegative SentimentLabel = "very_negative"
	Negative     SentimentLabel = "negative"
	Neutral      SentimentLabel = "neutral"
	Positive     SentimentLabel = "positive"
	VeryPositive SentimentLabel = "very_positive"
)

// ScoreDistribution counts scored messages per bucket.
type ScoreDistribution struct {
	VeryNegative int `json:"very_negative" yaml:"very_negative"`
	Negative     int `json:"negative" yaml:"negative"`
	Neutral      int `json:"neutral" yaml:"neutral"`
	Positive     int `json:"positive" yaml:"positive"`
	VeryPositive int `json:"very_positive" yaml:"very_positive"`
}

// Total returns the sum of all bucket counts.
func (d ScoreDistribution) Total() int {
	return d.VeryNegative + d.Negative + d.Neutral + d.Positive + d.VeryPositive
}

// MessageSentiment is the per-message sentiment annotation.
type MessageSentiment struct {
	ID        string         `json:"id" yaml:"id"`
	Sender    string         `json:"sender" yaml:"sender"`
	Score     float64        `json:"score" yaml:"score"`
	Sentiment SentimentLabel `json:"sentiment" yaml:"sentiment"`
}

// ParticipantSentiment summarizes one participant's scored messages.
type ParticipantSentiment struct {
	Score        float64           `json:"score" yaml:"score"`
	Sentiment    SentimentLabel    `json:"sentiment" yaml:"sentiment"`
	MessageCount int               `json:"message_count" yaml:"message_count"`
	Distribution ScoreDistribution `json:"distribution" yaml:"distribution"`
}

// SentimentResult is the sentiment section of an analysis result.
type SentimentResult struct {
	Available bool   `json:"available" yaml:"available"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Method names which sub-scores actually contributed, e.g. "fusion",
	// "lexicon+statistical", "lexicon". A user-visible trust signal.
	Method string `json:"method" yaml:"method"`

	OverallSentiment SentimentLabel    `json:"overall_sentiment" yaml:"overall_sentiment"`
	SentimentScore   float64           `json:"sentiment_score" yaml:"sentiment_score"`
	Distribution     ScoreDistribution `json:"score_distribution" yaml:"score_distribution"`
	Unscored         int               `json:"unscored" yaml:"unscored"`

	// Present only when the statistical sub-score contributed.
	AvgPolarity     *float64 `json:"avg_polarity,omitempty" yaml:"avg_polarity,omitempty"`
	AvgSubjectivity *float64 `json:"avg_subjectivity,omitempty" yaml:"avg_subjectivity,omitempty"`

	PerMessage     []MessageSentiment              `json:"per_message,omitempty" yaml:"per_message,omitempty"`
	PerParticipant map[string]ParticipantSentiment `json:"per_participant,omitempty" yaml:"per_participant,omitempty"`
}

// Edge is one directed response relationship: From responded to To.
type Edge struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Weight int    `json:"weight" yaml:"weight"`
}

// Node carries per-participant graph degrees.
type Node struct {
	ID          string `json:"id" yaml:"id"`
	InDegree    int    `json:"in_degree" yaml:"in_degree"`
	OutDegree   int    `json:"out_degree" yaml:"out_degree"`
	TotalDegree int    `json:"total_degree" yaml:"total_degree"`
}

// NetworkResult is the relationship-graph section of an analysis result.
type NetworkResult struct {
	Available bool   `json:"available" yaml:"available"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`

	Density         float64        `json:"density" yaml:"density"`
	NumCommunities  int            `json:"num_communities" yaml:"num_communities"`
	Communities     [][]string     `json:"communities,omitempty" yaml:"communities,omitempty"`
	MostCentral     string         `json:"most_central,omitempty" yaml:"most_central,omitempty"`
	MostRespondedTo string         `json:"most_responded_to,omitempty" yaml:"most_responded_to,omitempty"`
	MostResponsive  string         `json:"most_responsive,omitempty" yaml:"most_responsive,omitempty"`
	Edges           []Edge         `json:"edges,omitempty" yaml:"edges,omitempty"`
	Nodes           []Node         `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Initiations     map[string]int `json:"initiations,omitempty" yaml:"initiations,omitempty"`
}

// Burst is a sliding window whose message rate exceeded the baseline.
type Burst struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Rate  float64   `json:"rate" yaml:"rate"` // messages per hour
}

// Dormancy is the single longest inter-message gap over the threshold.
type Dormancy struct {
	Start    time.Time     `json:"start" yaml:"start"`
	End      time.Time     `json:"end" yaml:"end"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Session is a run of messages with no internal gap over the session
// threshold.
type Session struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Count int       `json:"count" yaml:"count"`
}

// ResponseTimes summarizes gaps between different-sender adjacent messages.
type ResponseTimes struct {
	Average    time.Duration `json:"average" yaml:"average"`
	Median     time.Duration `json:"median" yaml:"median"`
	SampleSize int           `json:"sample_size" yaml:"sample_size"`
}

// TemporalResult is the temporal-pattern section of an analysis result.
type TemporalResult struct {
	Available bool   `json:"available" yaml:"available"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`

	Bursts        []Burst        `json:"bursts,omitempty" yaml:"bursts,omitempty"`
	Dormancy      *Dormancy      `json:"dormancy,omitempty" yaml:"dormancy,omitempty"`
	Sessions      []Session      `json:"sessions,omitempty" yaml:"sessions,omitempty"`
	HourHistogram [24]int        `json:"hour_histogram" yaml:"hour_histogram"`
	BusiestHour   int            `json:"busiest_hour" yaml:"busiest_hour"`
	ResponseTimes *ResponseTimes `json:"response_times,omitempty" yaml:"response_times,omitempty"`
	MessageCounts map[string]int `json:"message_counts,omitempty" yaml:"message_counts,omitempty"`
}

// StatementType classifies a message's communicative form.
type StatementType string

const (
	StatementQuestion    StatementType = "question"
	StatementCommand     StatementType = "command"
	StatementAssertion   StatementType = "assertion"
	StatementExclamation StatementType = "exclamation"
)

// MessageRisk is the per-message content-risk annotation.
type MessageRisk struct {
	ID        string        `json:"id" yaml:"id"`
	Type      StatementType `json:"type" yaml:"type"`
	Intensity float64       `json:"intensity" yaml:"intensity"`
	RiskFlag  bool          `json:"risk_flag" yaml:"risk_flag"`
}

// ContentRiskResult is the content-risk section of an analysis result.
type ContentRiskResult struct {
	Available bool   `json:"available" yaml:"available"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`

	StatementTypeCounts map[StatementType]int `json:"statement_type_counts" yaml:"statement_type_counts"`
	RiskFlaggedCount    int                   `json:"risk_flagged_count" yaml:"risk_flagged_count"`
	UrgentCount         int                   `json:"urgent_count" yaml:"urgent_count"`
	PerMessage          []MessageRisk         `json:"per_message,omitempty" yaml:"per_message,omitempty"`
}

// Result is the read-only aggregate of one analysis run. Each section
// carries its own availability so consumers can tell a computed zero from a
// degraded or disabled analyzer.
type Result struct {
	ConversationID string            `json:"conversation_id" yaml:"conversation_id"`
	Sentiment      SentimentResult   `json:"sentiment" yaml:"sentiment"`
	Network        NetworkResult     `json:"network" yaml:"network"`
	Temporal       TemporalResult    `json:"temporal" yaml:"temporal"`
	ContentRisk    ContentRiskResult `json:"content_risk" yaml:"content_risk"`
}
