package zabbix

import "testing"

const tierNow = int64(1_750_000_000)

func TestPlanFetch_HistoryOnly(t *testing.T) {
	w := TimeWindow{From: tierNow - 2*secondsPerDay, To: tierNow}
	plan := PlanFetch(w, tierNow, 7, 365)

	if len(plan) != 1 {
		t.Fatalf("expected 1 sub-range, got %d", len(plan))
	}
	if plan[0].Tier != TierHistory {
		t.Errorf("expected history tier, got %v", plan[0].Tier)
	}
	if plan[0].From != w.From || plan[0].To != w.To {
		t.Errorf("expected sub-range equal to window, got [%d, %d]", plan[0].From, plan[0].To)
	}
}

func TestPlanFetch_TrendOnly(t *testing.T) {
	w := TimeWindow{From: tierNow - 100*secondsPerDay, To: tierNow - 50*secondsPerDay}
	plan := PlanFetch(w, tierNow, 7, 365)

	if len(plan) != 1 {
		t.Fatalf("expected 1 sub-range, got %d", len(plan))
	}
	if plan[0].Tier != TierTrend {
		t.Errorf("expected trend tier, got %v", plan[0].Tier)
	}
	if plan[0].From != w.From || plan[0].To != w.To {
		t.Errorf("expected sub-range equal to window, got [%d, %d]", plan[0].From, plan[0].To)
	}
}

func TestPlanFetch_Mixed(t *testing.T) {
	w := TimeWindow{From: tierNow - 30*secondsPerDay, To: tierNow}
	plan := PlanFetch(w, tierNow, 7, 365)

	if len(plan) != 2 {
		t.Fatalf("expected 2 sub-ranges, got %d", len(plan))
	}
	trend, history := plan[0], plan[1]
	if trend.Tier != TierTrend || history.Tier != TierHistory {
		t.Fatalf("expected trend then history, got %v then %v", trend.Tier, history.Tier)
	}

	boundary := tierNow - 7*secondsPerDay
	if trend.From != w.From || trend.To != boundary {
		t.Errorf("trend sub-range [%d, %d], want [%d, %d]", trend.From, trend.To, w.From, boundary)
	}
	if history.From != boundary+1 || history.To != w.To {
		t.Errorf("history sub-range [%d, %d], want [%d, %d]", history.From, history.To, boundary+1, w.To)
	}

	// Contiguous, non-overlapping, covering the window.
	if history.From != trend.To+1 {
		t.Errorf("sub-ranges not contiguous: trend ends %d, history starts %d", trend.To, history.From)
	}
}

func TestPlanFetch_TooOld(t *testing.T) {
	w := TimeWindow{From: tierNow - 500*secondsPerDay, To: tierNow - 400*secondsPerDay}
	if plan := PlanFetch(w, tierNow, 7, 365); plan != nil {
		t.Errorf("expected empty plan for window past trend retention, got %v", plan)
	}
}

func TestPlanFetch_StartPastTrendRetention(t *testing.T) {
	// Start predates trend retention even though the end is inside it.
	w := TimeWindow{From: tierNow - 400*secondsPerDay, To: tierNow - 100*secondsPerDay}
	if plan := PlanFetch(w, tierNow, 7, 365); plan != nil {
		t.Errorf("expected empty plan, got %v", plan)
	}
}

func TestPlanFetch_ZeroWidthWindow(t *testing.T) {
	w := TimeWindow{From: tierNow - 100, To: tierNow - 100}
	if plan := PlanFetch(w, tierNow, 7, 365); plan != nil {
		t.Errorf("expected empty plan for zero-width window, got %v", plan)
	}
}

func TestPlanFetch_FractionalRetention(t *testing.T) {
	// 1.5 days of history: a 2-day window splits at now - 1.5d.
	w := TimeWindow{From: tierNow - 2*secondsPerDay, To: tierNow}
	plan := PlanFetch(w, tierNow, 1.5, 365)

	if len(plan) != 2 {
		t.Fatalf("expected 2 sub-ranges, got %d", len(plan))
	}
	boundary := tierNow - int64(1.5*secondsPerDay)
	if plan[0].To != boundary || plan[1].From != boundary+1 {
		t.Errorf("split at [%d, %d], want boundary %d", plan[0].To, plan[1].From, boundary)
	}
}
