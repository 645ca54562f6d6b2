package analysis

import "legalyze/internal/domain"

// RiskScore rates a result from 1 (no risks listed) to 10, two points per risk.
func RiskScore(r *domain.AnalysisResult) int {
	if r == nil || len(r.Risks) == 0 {
		return 1
	}
	return min(10, max(1, len(r.Risks)*2))
}
