// Package timeline derives notification deadlines from a classification
// using business-day arithmetic. A business day is a weekday; Saturday and
// Sunday are skipped. Holiday calendars are intentionally not consulted —
// deadlines are conservative and organization-specific holidays differ.
package timeline

import (
	"time"

	"github.com/huntridge-labs/argus/internal/model"
	"github.com/huntridge-labs/argus/internal/profile"
)

// AddBusinessDays walks day-by-day from t, skipping weekends, until n
// business days have been added (n > 0) or subtracted (n < 0).
func AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for n > 0 {
		// AddDate steps whole calendar days, so the clock time is
		// preserved across DST transitions in zoned reference dates.
		t = t.AddDate(0, 0, step)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n--
		}
	}
	return t
}

// Compute derives the milestone set for a classification category anchored
// at the given reference date (the change's completion or target date).
//
// ROUTINE produces no milestones. ADAPTIVE produces a single post-completion
// deadline. TRANSFORMATIVE produces initial and final notices before the
// reference date plus an optional post-completion deadline. IMPACT carries
// the new-assessment flag with no date arithmetic, since that process cannot
// proceed via timed notice. MANUAL_REVIEW produces no milestones; a human
// must assign a category first.
func Compute(category model.Category, reference time.Time, cfg profile.Notifications) model.Timeline {
	tl := model.Timeline{Category: category, Reference: reference}

	switch category {
	case model.Adaptive:
		days := cfg.Adaptive.PostCompletionDays
		tl.Milestones = []model.Milestone{{
			Name:         model.MilestonePostCompletion,
			Date:         AddBusinessDays(reference, days),
			BusinessDays: days,
		}}
		tl.Note = cfg.Adaptive.Description

	case model.Transformative:
		t := cfg.Transformative
		tl.Milestones = []model.Milestone{
			{
				Name:         model.MilestoneInitialNotice,
				Date:         AddBusinessDays(reference, -t.InitialNoticeDays),
				BusinessDays: -t.InitialNoticeDays,
			},
			{
				Name:         model.MilestoneFinalNotice,
				Date:         AddBusinessDays(reference, -t.FinalNoticeDays),
				BusinessDays: -t.FinalNoticeDays,
			},
		}
		if t.PostCompletionRequired {
			tl.Milestones = append(tl.Milestones, model.Milestone{
				Name:         model.MilestonePostCompletion,
				Date:         AddBusinessDays(reference, t.PostCompletionDays),
				BusinessDays: t.PostCompletionDays,
			})
		}
		tl.Note = t.Description

	case model.Impact:
		tl.RequiresAssessment = cfg.Impact.RequiresNewAssessment
		tl.Note = cfg.Impact.Description
		if tl.Note == "" {
			tl.Note = "new assessment required"
		}

	case model.ManualReview:
		tl.Note = "pending human review; notification deadlines apply once a category is assigned"
	}

	return tl
}
