package contracts

// Criterion is one evaluated pass/fail check of the composite score.
type Criterion struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"` // 1 when passed, 0 otherwise
	Detail    string `json:"detail"`
}

// ScoreResult is the nine-criterion fundamental-quality score, grouped
// into three categories of three criteria each.
type ScoreResult struct {
	TotalScore     int         `json:"total_score"`
	Profitability  []Criterion `json:"profitability"`
	Leverage       []Criterion `json:"leverage"`
	Operating      []Criterion `json:"operating"`
	Interpretation string      `json:"interpretation"`
}

// Sum recounts passed criteria across all categories. It must always
// equal TotalScore.
func (r *ScoreResult) Sum() int {
	total := 0
	for _, cat := range [][]Criterion{r.Profitability, r.Leverage, r.Operating} {
		for _, c := range cat {
			total += c.Score
		}
	}
	return total
}
