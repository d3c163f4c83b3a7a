package zabbix

// Tier names a storage tier: fine-grained short-retention history rows or
// rolled-up long-retention trend rows.
type Tier int

const (
	TierHistory Tier = iota
	TierTrend
)

func (t Tier) String() string {
	if t == TierTrend {
		return "trend"
	}
	return "history"
}

// FetchRange is one sub-range of a fetch plan: query this tier over
// [From, To] inclusive.
type FetchRange struct {
	Tier Tier
	From int64
	To   int64
}

// PlanFetch decides which tier(s) serve the window, given the item's
// retention horizons in days. now is caller-supplied so the decision is a
// pure function.
//
// The plan has zero, one or two sub-ranges:
//   - window start within history retention: one HISTORY range, the window as-is
//   - start past history retention but end within it: TREND up to the
//     retention boundary, then HISTORY from one second after it — contiguous,
//     non-overlapping, trend portion strictly older
//   - whole window past history but start within trend retention: one TREND range
//   - start past trend retention, or a zero-width window: empty plan
func PlanFetch(w TimeWindow, now int64, historyDays, trendDays float64) []FetchRange {
	if w.From >= w.To {
		return nil
	}

	ageFromDays := float64(now-w.From) / secondsPerDay
	if ageFromDays <= historyDays {
		return []FetchRange{{Tier: TierHistory, From: w.From, To: w.To}}
	}

	ageToDays := float64(now-w.To) / secondsPerDay
	if ageToDays <= historyDays {
		boundary := now - int64(historyDays*secondsPerDay)
		return []FetchRange{
			{Tier: TierTrend, From: w.From, To: boundary},
			{Tier: TierHistory, From: boundary + 1, To: w.To},
		}
	}

	if ageFromDays <= trendDays {
		return []FetchRange{{Tier: TierTrend, From: w.From, To: w.To}}
	}

	// Window predates all retained data.
	return nil
}
