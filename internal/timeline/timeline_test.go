package timeline

import (
	"testing"
	"time"

	"github.com/huntridge-labs/argus/internal/model"
	"github.com/huntridge-labs/argus/internal/profile"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		days  int
		want  time.Time
	}{
		{"zero is identity", date(2026, time.March, 4), 0, date(2026, time.March, 4)},
		{"forward within week", date(2026, time.March, 2), 3, date(2026, time.March, 5)}, // Mon +3 = Thu
		{"forward over weekend", date(2026, time.March, 6), 1, date(2026, time.March, 9)}, // Fri +1 = Mon
		{"back within week", date(2026, time.March, 6), -2, date(2026, time.March, 4)},    // Fri -2 = Wed
		{"back over weekend", date(2026, time.March, 9), -1, date(2026, time.March, 6)},   // Mon -1 = Fri
		{"ten forward spans two weekends", date(2026, time.March, 2), 10, date(2026, time.March, 16)},
		{"thirty back", date(2026, time.April, 15), -30, date(2026, time.March, 4)},
		{"from saturday forward", date(2026, time.March, 7), 1, date(2026, time.March, 9)}, // Sat +1 = Mon
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddBusinessDays(tt.start, tt.days)
			if !got.Equal(tt.want) {
				t.Errorf("AddBusinessDays(%s, %d) = %s, want %s",
					tt.start.Format("2006-01-02"), tt.days,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestAddBusinessDaysPreservesClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Friday 23:00 the evening before the US spring-forward weekend
	// (2026-03-08). Stepping with a fixed 24h duration would drift the
	// clock through the lost hour; the result must stay Monday 23:00.
	start := time.Date(2026, time.March, 6, 23, 0, 0, 0, loc)
	got := AddBusinessDays(start, 1)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 9 {
		t.Errorf("date = %s, want 2026-03-09", got.Format("2006-01-02"))
	}
	if got.Hour() != 23 {
		t.Errorf("Hour() = %d, want 23", got.Hour())
	}
}

func TestComputeRoutineHasNoMilestones(t *testing.T) {
	tl := Compute(model.Routine, date(2026, time.March, 6), profile.Default().Notifications)
	if len(tl.Milestones) != 0 {
		t.Errorf("got %d milestones, want 0", len(tl.Milestones))
	}
	if tl.RequiresAssessment {
		t.Error("RequiresAssessment should be false")
	}
}

func TestComputeAdaptive(t *testing.T) {
	ref := date(2026, time.March, 6) // Friday
	tl := Compute(model.Adaptive, ref, profile.Default().Notifications)

	if len(tl.Milestones) != 1 {
		t.Fatalf("got %d milestones, want 1", len(tl.Milestones))
	}
	m := tl.Milestones[0]
	if m.Name != model.MilestonePostCompletion {
		t.Errorf("Name = %q, want post_completion", m.Name)
	}
	if m.BusinessDays != 10 {
		t.Errorf("BusinessDays = %d, want 10", m.BusinessDays)
	}
	if want := date(2026, time.March, 20); !m.Date.Equal(want) {
		t.Errorf("Date = %s, want %s", m.Date.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestComputeTransformative(t *testing.T) {
	ref := date(2026, time.April, 15) // Wednesday
	tl := Compute(model.Transformative, ref, profile.Default().Notifications)

	if len(tl.Milestones) != 3 {
		t.Fatalf("got %d milestones, want 3 (initial, final, post-completion)", len(tl.Milestones))
	}

	initial := tl.Milestones[0]
	if initial.Name != model.MilestoneInitialNotice || initial.BusinessDays != -30 {
		t.Errorf("milestone[0] = %+v, want initial_notice at -30", initial)
	}
	if want := date(2026, time.March, 4); !initial.Date.Equal(want) {
		t.Errorf("initial Date = %s, want %s", initial.Date.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	final := tl.Milestones[1]
	if final.Name != model.MilestoneFinalNotice || final.BusinessDays != -10 {
		t.Errorf("milestone[1] = %+v, want final_notice at -10", final)
	}
	if want := date(2026, time.April, 1); !final.Date.Equal(want) {
		t.Errorf("final Date = %s, want %s", final.Date.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	post := tl.Milestones[2]
	if post.Name != model.MilestonePostCompletion || post.BusinessDays != 10 {
		t.Errorf("milestone[2] = %+v, want post_completion at +10", post)
	}

	// Initial notice always precedes final notice.
	if !initial.Date.Before(final.Date) {
		t.Error("initial notice must precede final notice")
	}
}

func TestComputeTransformativeWithoutPostCompletion(t *testing.T) {
	cfg := profile.Default().Notifications
	cfg.Transformative.PostCompletionRequired = false

	tl := Compute(model.Transformative, date(2026, time.April, 15), cfg)
	if len(tl.Milestones) != 2 {
		t.Fatalf("got %d milestones, want 2", len(tl.Milestones))
	}
}

func TestComputeImpact(t *testing.T) {
	tl := Compute(model.Impact, date(2026, time.March, 6), profile.Default().Notifications)

	if len(tl.Milestones) != 0 {
		t.Errorf("got %d milestones, want 0", len(tl.Milestones))
	}
	if !tl.RequiresAssessment {
		t.Error("RequiresAssessment should be true")
	}
	if tl.Note == "" {
		t.Error("Note is empty")
	}
}

func TestComputeManualReview(t *testing.T) {
	tl := Compute(model.ManualReview, date(2026, time.March, 6), profile.Default().Notifications)

	if len(tl.Milestones) != 0 {
		t.Errorf("got %d milestones, want 0", len(tl.Milestones))
	}
	if tl.RequiresAssessment {
		t.Error("RequiresAssessment should be false")
	}
	if tl.Note == "" {
		t.Error("Note should explain the pending review")
	}
}

func TestComputeCarriesCategoryAndReference(t *testing.T) {
	ref := date(2026, time.March, 6)
	tl := Compute(model.Adaptive, ref, profile.Default().Notifications)
	if tl.Category != model.Adaptive {
		t.Errorf("Category = %s, want ADAPTIVE", tl.Category)
	}
	if !tl.Reference.Equal(ref) {
		t.Errorf("Reference = %s, want %s", tl.Reference, ref)
	}
}

func TestMilestoneDatesAreWeekdays(t *testing.T) {
	// Every derived milestone must land on a weekday regardless of the
	// reference's day of week.
	cfg := profile.Default().Notifications
	for d := 0; d < 7; d++ {
		ref := date(2026, time.March, 1).AddDate(0, 0, d)
		for _, cat := range []model.Category{model.Adaptive, model.Transformative} {
			tl := Compute(cat, ref, cfg)
			for _, m := range tl.Milestones {
				if wd := m.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
					t.Errorf("%s from %s: milestone %s lands on %s", cat, ref.Format("2006-01-02"), m.Name, wd)
				}
			}
		}
	}
}
