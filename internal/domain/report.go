package domain

import "time"

// AccountScore accumulates the additive base_score x temporal_factor
// contributions to one account across every PatternHit it participates in,
// capped at 100 only after all hits have been folded in.
type AccountScore struct {
	AccountID string
	Score     float64
	Patterns  map[PatternKind]struct{}
	RingIDs   []string
}

// AddContribution folds one hit's contribution into the account's running
// score. Capping to 100 happens once, after every hit is processed.
func (a *AccountScore) AddContribution(kind PatternKind, ringID string, amount float64) {
	if a.Patterns == nil {
		a.Patterns = make(map[PatternKind]struct{})
	}
	a.Score += amount
	a.Patterns[kind] = struct{}{}
	a.RingIDs = append(a.RingIDs, ringID)
}

// FraudRing is one assembled group of accounts sharing a single detected
// pattern instance.
type FraudRing struct {
	RingID         string   `json:"ring_id"`
	PatternType    string   `json:"pattern_type"`
	MemberAccounts []string `json:"member_accounts"`
	RiskScore      float64  `json:"risk_score"`
}

// SuspiciousAccount is one row of the report's suspicious_accounts section.
type SuspiciousAccount struct {
	AccountID      string   `json:"account_id"`
	SuspicionScore float64  `json:"suspicion_score"`
	Patterns       []string `json:"patterns"`
	RingIDs        []string `json:"ring_ids"`
}

// Summary carries the report's aggregate counters.
type Summary struct {
	TotalAccountsAnalyzed     int     `json:"total_accounts_analyzed"`
	SuspiciousAccountsFlagged int     `json:"suspicious_accounts_flagged"`
	FraudRingsDetected        int     `json:"fraud_rings_detected"`
	ProcessingTimeSeconds     float64 `json:"processing_time_seconds"`
}

// GraphNode is one node entry in the graph_data visualization projection.
type GraphNode struct {
	ID                string   `json:"id"`
	InDegree          int      `json:"in_degree"`
	OutDegree         int      `json:"out_degree"`
	TotalTransactions int      `json:"total_transactions"`
	Suspicious        bool     `json:"suspicious"`
	Patterns          []string `json:"patterns"`
	RingIDs           []string `json:"ring_ids"`
}

// GraphEdge is one edge entry in the graph_data visualization projection.
type GraphEdge struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	TotalAmount float64 `json:"total_amount"`
	Count       int     `json:"count"`
}

// GraphProjection is the visualization-friendly view of the analyzed graph.
type GraphProjection struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// AnalysisResult is the core's pure output: everything §6 of the
// specification names, with no service-layer identifiers attached. This is
// what forensics.Analyze returns — deterministic, unstamped.
type AnalysisResult struct {
	SuspiciousAccounts []SuspiciousAccount `json:"suspicious_accounts"`
	FraudRings         []FraudRing         `json:"fraud_rings"`
	Summary            Summary             `json:"summary"`
	GraphData          GraphProjection     `json:"graph_data"`
}

// AnalysisReport wraps one AnalysisResult with the service-layer identity
// the core itself never produces: a report id and the instant it was
// produced. Kept separate from AnalysisResult so the core stays a pure,
// deterministic function of its input.
type AnalysisReport struct {
	ReportID    string         `json:"report_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Result      AnalysisResult `json:"result"`
}
