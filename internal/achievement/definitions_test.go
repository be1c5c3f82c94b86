package achievement

import (
	"fmt"
	"testing"
	"time"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
)

func completedOn(ts time.Time) entity.TaskRecord {
	return entity.TaskRecord{Completed: true, CompletedAt: &ts}
}

func mustCheck(t *testing.T, id ID, s *entity.Snapshot) bool {
	t.Helper()
	def, ok := ByID(id)
	if !ok {
		t.Fatalf("definition %s not found", id)
	}
	return def.Check(s)
}

func TestCatalogueIsWellFormed(t *testing.T) {
	seen := map[ID]struct{}{}
	for _, def := range Definitions() {
		if def.ID == "" || def.Name == "" || def.Points <= 0 || def.Check == nil {
			t.Fatalf("incomplete definition: %+v", def)
		}
		if _, dup := seen[def.ID]; dup {
			t.Fatalf("duplicate definition id %s", def.ID)
		}
		seen[def.ID] = struct{}{}
	}
	if len(seen) != 25 {
		t.Fatalf("expected 25 definitions, got %d", len(seen))
	}
}

func TestStreakRules(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC) }

	consecutive := &entity.Snapshot{Tasks: []entity.TaskRecord{
		completedOn(day(1)), completedOn(day(2)), completedOn(day(3)),
	}}
	if !mustCheck(t, DailyDynamo, consecutive) {
		t.Fatal("three consecutive days should satisfy the 3-day streak")
	}

	gapped := &entity.Snapshot{Tasks: []entity.TaskRecord{
		completedOn(day(1)), completedOn(day(2)), completedOn(day(4)),
	}}
	if mustCheck(t, DailyDynamo, gapped) {
		t.Fatal("a 1-day gap should break the streak")
	}

	week := &entity.Snapshot{}
	for d := 1; d <= 7; d++ {
		week.Tasks = append(week.Tasks, completedOn(day(d)))
	}
	if !mustCheck(t, StreakStarter, week) {
		t.Fatal("seven consecutive days should satisfy the 7-day streak")
	}
}

func TestCompletionCountBoundary(t *testing.T) {
	ts := time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC)
	s := &entity.Snapshot{}
	for i := 0; i < 9; i++ {
		s.Tasks = append(s.Tasks, completedOn(ts))
	}
	s.Tasks = append(s.Tasks, entity.TaskRecord{Completed: false})
	if mustCheck(t, TenaciousTen, s) {
		t.Fatal("nine completions should not unlock the ten-task tier")
	}

	s.Tasks = append(s.Tasks, completedOn(ts))
	if !mustCheck(t, TenaciousTen, s) {
		t.Fatal("ten completions should unlock the ten-task tier")
	}
}

func TestTimeOfDayRules(t *testing.T) {
	early := completedOn(time.Date(2024, 2, 1, 8, 59, 0, 0, time.UTC))
	late := completedOn(time.Date(2024, 2, 1, 21, 0, 0, 0, time.UTC))
	midday := completedOn(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC))

	if !mustCheck(t, EarlyBird, &entity.Snapshot{Tasks: []entity.TaskRecord{early}}) {
		t.Fatal("8:59 completion should count as early bird")
	}
	if mustCheck(t, EarlyBird, &entity.Snapshot{Tasks: []entity.TaskRecord{midday}}) {
		t.Fatal("midday completion should not count as early bird")
	}
	if !mustCheck(t, NightOwl, &entity.Snapshot{Tasks: []entity.TaskRecord{late}}) {
		t.Fatal("21:00 completion should count as night owl")
	}
	if mustCheck(t, NightOwl, &entity.Snapshot{Tasks: []entity.TaskRecord{midday}}) {
		t.Fatal("midday completion should not count as night owl")
	}
}

func TestComebackKid(t *testing.T) {
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	s := &entity.Snapshot{
		Today: today,
		Tasks: []entity.TaskRecord{
			completedOn(today.Add(9 * time.Hour)),
			completedOn(today.AddDate(0, 0, -2).Add(9 * time.Hour)),
		},
	}
	if !mustCheck(t, ComebackKid, s) {
		t.Fatal("today + day-before-yesterday with a gap should be a comeback")
	}

	s.Tasks = append(s.Tasks, completedOn(today.AddDate(0, 0, -1).Add(9*time.Hour)))
	if mustCheck(t, ComebackKid, s) {
		t.Fatal("an unbroken run is not a comeback")
	}
}

func TestSubjectSavant(t *testing.T) {
	ts := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	s := &entity.Snapshot{}
	for _, category := range []string{"math", "physics"} {
		for i := 0; i < 10; i++ {
			task := completedOn(ts)
			task.Category = category
			s.Tasks = append(s.Tasks, task)
		}
	}
	if mustCheck(t, SubjectSavant, s) {
		t.Fatal("two qualifying categories should not be enough")
	}

	for i := 0; i < 10; i++ {
		task := completedOn(ts)
		task.Category = "history"
		s.Tasks = append(s.Tasks, task)
	}
	if !mustCheck(t, SubjectSavant, s) {
		t.Fatal("three categories with ten completions each should qualify")
	}
}

func TestPlannerPro(t *testing.T) {
	today := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	s := &entity.Snapshot{Today: today}
	for i := 0; i < 6; i++ {
		d := today.AddDate(0, 0, i)
		s.Tasks = append(s.Tasks, entity.TaskRecord{ScheduledDate: &d})
	}
	if mustCheck(t, PlannerPro, s) {
		t.Fatal("six scheduled days should not cover a full week")
	}

	d := today.AddDate(0, 0, 6)
	s.Tasks = append(s.Tasks, entity.TaskRecord{ScheduledDate: &d})
	if !mustCheck(t, PlannerPro, s) {
		t.Fatal("seven consecutive scheduled days should cover the week")
	}
}

func TestPerfectDay(t *testing.T) {
	day := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)
	done := day.Add(10 * time.Hour)

	s := &entity.Snapshot{}
	for i := 0; i < 3; i++ {
		s.Tasks = append(s.Tasks, entity.TaskRecord{
			Completed: true, CompletedAt: &done, ScheduledDate: &day,
		})
	}
	if !mustCheck(t, PerfectDay, s) {
		t.Fatal("three of three planned tasks completed on their day should qualify")
	}

	s.Tasks = append(s.Tasks, entity.TaskRecord{ScheduledDate: &day})
	if mustCheck(t, PerfectDay, s) {
		t.Fatal("an unfinished planned task should spoil the day")
	}
}

func TestFlawlessWeek(t *testing.T) {
	monday := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	s := &entity.Snapshot{}
	for i := 0; i < 5; i++ {
		day := monday.AddDate(0, 0, i)
		done := day.Add(18 * time.Hour)
		s.Tasks = append(s.Tasks, entity.TaskRecord{
			Completed: true, CompletedAt: &done, ScheduledDate: &day,
		})
	}
	if !mustCheck(t, FlawlessWeek, s) {
		t.Fatal("five on-time days in one week should be flawless")
	}

	lateDay := monday.AddDate(0, 0, 2)
	lateDone := lateDay.AddDate(0, 0, 1)
	s.Tasks = append(s.Tasks, entity.TaskRecord{
		Completed: true, CompletedAt: &lateDone, ScheduledDate: &lateDay,
	})
	if mustCheck(t, FlawlessWeek, s) {
		t.Fatal("a task finished a day late should spoil the week")
	}
}

func TestMetaAchieverCountsOthers(t *testing.T) {
	s := &entity.Snapshot{}
	for i := 0; i < 4; i++ {
		s.Unlocked = append(s.Unlocked, entity.UserAchievement{ID: fmt.Sprintf("A%d", i)})
	}
	s.Unlocked = append(s.Unlocked, entity.UserAchievement{ID: string(MetaAchiever)})
	if mustCheck(t, MetaAchiever, s) {
		t.Fatal("meta achievement must not count itself")
	}

	s.Unlocked = append(s.Unlocked, entity.UserAchievement{ID: "A5"})
	if !mustCheck(t, MetaAchiever, s) {
		t.Fatal("five other unlocks should satisfy the meta rule")
	}
}

func TestDateDependentRulesSkipRecordsWithoutTimestamps(t *testing.T) {
	s := &entity.Snapshot{Tasks: []entity.TaskRecord{
		{Completed: true}, {Completed: true}, {Completed: true},
	}}
	if mustCheck(t, DailyDynamo, s) {
		t.Fatal("completions without timestamps cannot form a streak")
	}
	if !mustCheck(t, Initiate, s) {
		t.Fatal("count-based rules should still see timestampless completions")
	}
}
