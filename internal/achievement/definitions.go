// Package achievement holds the static achievement catalogue: a data-driven
// table of definitions whose predicates are pure functions of a snapshot.
// The evaluator in the usecase layer stays generic; everything rule-specific
// lives here.
package achievement

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
)

// ID identifies an achievement definition.
type ID string

const (
	Initiate            ID = "INITIATE"
	DailyDynamo         ID = "DAILY_DYNAMO"
	WeeklyWarrior       ID = "WEEKLY_WARRIOR"
	StreakStarter       ID = "STREAK_STARTER"
	PlannerPro          ID = "PLANNER_PRO"
	TenaciousTen        ID = "TENACIOUS_TEN"
	QuarterCenturyClub  ID = "QUARTER_CENTURY_CLUB"
	FiftyFinisher       ID = "FIFTY_FINISHER"
	Centurion           ID = "CENTURION"
	TaskTitan           ID = "TASK_TITAN"
	PointPioneer        ID = "POINT_PIONEER"
	HighRoller          ID = "HIGH_ROLLER"
	OnFire              ID = "ON_FIRE"
	EarlyBird           ID = "EARLY_BIRD"
	NightOwl            ID = "NIGHT_OWL"
	PerfectDay          ID = "PERFECT_DAY"
	FlawlessWeek        ID = "FLAWLESS_WEEK"
	SubjectSavant       ID = "SUBJECT_SAVANT"
	Marathoner          ID = "MARATHONER"
	ComebackKid         ID = "COMEBACK_KID"
	MetaAchiever        ID = "META_ACHIEVER"
	FirstJournalEntry   ID = "FIRST_JOURNAL_ENTRY"
	FiveJournalEntries  ID = "FIVE_JOURNAL_ENTRIES"
	TimeTrackerMasterL1 ID = "TIME_TRACKER_MASTER_LV1"
	TimeTrackerMasterL2 ID = "TIME_TRACKER_MASTER_LV2"
)

// Definition describes one achievement: display metadata, the points it
// awards, and the predicate deciding whether a snapshot satisfies it.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	Points      int
	Secret      bool
	Check       func(s *entity.Snapshot) bool
}

// Definitions returns the full achievement catalogue. The returned slice is
// a copy; callers may reorder it freely.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// ByID looks up a definition in the catalogue.
func ByID(id ID) (Definition, bool) {
	return lo.Find(definitions, func(def Definition) bool { return def.ID == id })
}

var definitions = []Definition{
	{
		ID:          Initiate,
		Name:        "Initiate!",
		Description: "Complete your first task.",
		Icon:        "CheckSquare",
		Points:      5,
		Check: func(s *entity.Snapshot) bool {
			return lo.SomeBy(s.Tasks, func(t entity.TaskRecord) bool { return t.Completed })
		},
	},
	{
		ID:          DailyDynamo,
		Name:        "Daily Dynamo",
		Description: "Complete at least one task for 3 days in a row.",
		Icon:        "Repeat",
		Points:      10,
		Check: func(s *entity.Snapshot) bool {
			return longestStreak(completionDays(s.Tasks)) >= 3
		},
	},
	{
		ID:          WeeklyWarrior,
		Name:        "Weekly Warrior",
		Description: "Complete tasks on 5 different days in a single week.",
		Icon:        "CalendarCheck",
		Points:      15,
		Check: func(s *entity.Snapshot) bool {
			byWeek := map[time.Time]map[time.Time]struct{}{}
			for _, day := range completionDays(s.Tasks) {
				week := startOfWeek(day)
				if byWeek[week] == nil {
					byWeek[week] = map[time.Time]struct{}{}
				}
				byWeek[week][day] = struct{}{}
			}
			for _, days := range byWeek {
				if len(days) >= 5 {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          StreakStarter,
		Name:        "Streak Starter",
		Description: "Achieve a 7-day task completion streak.",
		Icon:        "Flame",
		Points:      20,
		Check: func(s *entity.Snapshot) bool {
			return longestStreak(completionDays(s.Tasks)) >= 7
		},
	},
	{
		ID:          PlannerPro,
		Name:        "Planner Pro",
		Description: "Schedule tasks for a full week ahead.",
		Icon:        "CalendarRange",
		Points:      25,
		Check: func(s *entity.Snapshot) bool {
			scheduled := map[time.Time]struct{}{}
			for _, t := range s.Tasks {
				if t.ScheduledDate != nil {
					scheduled[entity.DateOf(*t.ScheduledDate)] = struct{}{}
				}
			}
			if len(scheduled) == 0 {
				return false
			}
			today := entity.DateOf(s.Today)
			for i := 0; i < 7; i++ {
				if _, ok := scheduled[today.AddDate(0, 0, i)]; !ok {
					return false
				}
			}
			return true
		},
	},
	{
		ID:          TenaciousTen,
		Name:        "Tenacious Ten",
		Description: "Complete 10 tasks successfully.",
		Icon:        "ListChecks",
		Points:      10,
		Check:       completedAtLeast(10),
	},
	{
		ID:          QuarterCenturyClub,
		Name:        "Quarter Century Club",
		Description: "Complete 25 tasks.",
		Icon:        "Gem",
		Points:      25,
		Check:       completedAtLeast(25),
	},
	{
		ID:          FiftyFinisher,
		Name:        "Fifty Finisher",
		Description: "Complete 50 tasks.",
		Icon:        "Medal",
		Points:      50,
		Check:       completedAtLeast(50),
	},
	{
		ID:          Centurion,
		Name:        "Centurion",
		Description: "Complete 100 tasks.",
		Icon:        "ShieldCheck",
		Points:      100,
		Check:       completedAtLeast(100),
	},
	{
		ID:          TaskTitan,
		Name:        "Task Titan",
		Description: "Complete 250 tasks.",
		Icon:        "Crown",
		Points:      150,
		Check:       completedAtLeast(250),
	},
	{
		ID:          PointPioneer,
		Name:        "Point Pioneer",
		Description: "Earn your first 100 points.",
		Icon:        "Star",
		Points:      10,
		Check:       func(s *entity.Snapshot) bool { return s.Score >= 100 },
	},
	{
		ID:          HighRoller,
		Name:        "High Roller",
		Description: "Earn 1,000 points.",
		Icon:        "Stars",
		Points:      25,
		Check:       func(s *entity.Snapshot) bool { return s.Score >= 1000 },
	},
	{
		ID:          OnFire,
		Name:        "On Fire!",
		Description: "Complete 5 tasks in a single day.",
		Icon:        "Zap",
		Points:      20,
		Check: func(s *entity.Snapshot) bool {
			perDay := map[time.Time]int{}
			for _, t := range s.Tasks {
				if t.Completed && t.CompletedAt != nil {
					perDay[entity.DateOf(*t.CompletedAt)]++
				}
			}
			for _, n := range perDay {
				if n >= 5 {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          EarlyBird,
		Name:        "Early Bird",
		Description: "Complete a task before 9 AM.",
		Icon:        "Sunrise",
		Points:      10,
		Check: func(s *entity.Snapshot) bool {
			return lo.SomeBy(s.Tasks, func(t entity.TaskRecord) bool {
				return t.Completed && t.CompletedAt != nil && t.CompletedAt.Hour() < 9
			})
		},
	},
	{
		ID:          NightOwl,
		Name:        "Night Owl",
		Description: "Complete a task after 9 PM.",
		Icon:        "Moon",
		Points:      10,
		Check: func(s *entity.Snapshot) bool {
			return lo.SomeBy(s.Tasks, func(t entity.TaskRecord) bool {
				return t.Completed && t.CompletedAt != nil && t.CompletedAt.Hour() >= 21
			})
		},
	},
	{
		ID:          PerfectDay,
		Name:        "Perfect Day",
		Description: "Complete all planned tasks for a single day (min. 3 tasks).",
		Icon:        "Award",
		Points:      50,
		Check: func(s *entity.Snapshot) bool {
			byDay := map[time.Time][]entity.TaskRecord{}
			for _, t := range s.Tasks {
				day, ok := planningDay(t)
				if !ok {
					continue
				}
				byDay[day] = append(byDay[day], t)
			}
			for day, tasks := range byDay {
				if len(tasks) < 3 {
					continue
				}
				done := lo.EveryBy(tasks, func(t entity.TaskRecord) bool {
					return t.Completed && t.CompletedAt != nil && entity.DateOf(*t.CompletedAt).Equal(day)
				})
				if done {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          FlawlessWeek,
		Name:        "Flawless Week",
		Description: "Complete all scheduled tasks for an entire week (min. 1 task per day, 5 days).",
		Icon:        "CalendarHeart",
		Points:      100,
		Check: func(s *entity.Snapshot) bool {
			type weekStats struct {
				scheduled       int
				completedOnTime int
				days            map[time.Time]struct{}
			}
			byWeek := map[time.Time]*weekStats{}
			for _, t := range s.Tasks {
				if t.ScheduledDate == nil {
					continue
				}
				day := entity.DateOf(*t.ScheduledDate)
				week := startOfWeek(day)
				stats := byWeek[week]
				if stats == nil {
					stats = &weekStats{days: map[time.Time]struct{}{}}
					byWeek[week] = stats
				}
				stats.scheduled++
				stats.days[day] = struct{}{}
				if t.Completed && t.CompletedAt != nil && entity.DateOf(*t.CompletedAt).Equal(day) {
					stats.completedOnTime++
				}
			}
			for _, stats := range byWeek {
				if stats.scheduled > 0 && len(stats.days) >= 5 && stats.scheduled == stats.completedOnTime {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          SubjectSavant,
		Name:        "Subject Savant",
		Description: "Complete 10 tasks in 3 different self-defined subjects/categories.",
		Icon:        "Library",
		Points:      30,
		Check: func(s *entity.Snapshot) bool {
			perCategory := lo.CountValuesBy(
				lo.Filter(s.Tasks, func(t entity.TaskRecord, _ int) bool { return t.Completed && t.Category != "" }),
				func(t entity.TaskRecord) string { return t.Category },
			)
			qualified := 0
			for _, n := range perCategory {
				if n >= 10 {
					qualified++
				}
			}
			return qualified >= 3
		},
	},
	{
		ID:          Marathoner,
		Name:        "Marathoner",
		Description: "Complete a task that you estimated would take over 2 hours.",
		Icon:        "Waypoints",
		Points:      25,
		Check: func(s *entity.Snapshot) bool {
			return lo.SomeBy(s.Tasks, func(t entity.TaskRecord) bool {
				return t.Completed && t.EstimatedMinutes > 120
			})
		},
	},
	{
		ID:          ComebackKid,
		Name:        "Comeback Kid",
		Description: "Complete a task after missing a day in your streak.",
		Icon:        "Undo2",
		Points:      15,
		Check: func(s *entity.Snapshot) bool {
			days := map[time.Time]struct{}{}
			for _, day := range completionDays(s.Tasks) {
				days[day] = struct{}{}
			}
			if len(days) < 2 {
				return false
			}
			today := entity.DateOf(s.Today)
			_, doneToday := days[today]
			_, doneYesterday := days[today.AddDate(0, 0, -1)]
			_, doneBefore := days[today.AddDate(0, 0, -2)]
			return doneToday && !doneYesterday && doneBefore
		},
	},
	{
		ID:          MetaAchiever,
		Name:        "Meta Achiever",
		Description: "Unlock 5 other achievements.",
		Icon:        "Combine",
		Points:      30,
		Check: func(s *entity.Snapshot) bool {
			others := lo.CountBy(s.Unlocked, func(ua entity.UserAchievement) bool {
				return ua.ID != string(MetaAchiever)
			})
			return others >= 5
		},
	},
	{
		ID:          FirstJournalEntry,
		Name:        "Reflective Start",
		Description: "Write your first journal entry.",
		Icon:        "BookOpen",
		Points:      10,
		Check:       func(s *entity.Snapshot) bool { return len(s.JournalEntries) >= 1 },
	},
	{
		ID:          FiveJournalEntries,
		Name:        "Consistent Chronicler",
		Description: "Write 5 journal entries.",
		Icon:        "NotebookText",
		Points:      20,
		Check:       func(s *entity.Snapshot) bool { return len(s.JournalEntries) >= 5 },
	},
	{
		ID:          TimeTrackerMasterL1,
		Name:        "Time Apprentice",
		Description: "Track a total of 1 hour across your tasks.",
		Icon:        "Hourglass",
		Points:      15,
		Check:       trackedAtLeast(3600),
	},
	{
		ID:          TimeTrackerMasterL2,
		Name:        "Time Journeyman",
		Description: "Track a total of 5 hours across your tasks.",
		Icon:        "Timer",
		Points:      30,
		Check:       trackedAtLeast(18000),
	},
}

func completedAtLeast(n int) func(*entity.Snapshot) bool {
	return func(s *entity.Snapshot) bool {
		return lo.CountBy(s.Tasks, func(t entity.TaskRecord) bool { return t.Completed }) >= n
	}
}

func trackedAtLeast(seconds int) func(*entity.Snapshot) bool {
	return func(s *entity.Snapshot) bool {
		total := lo.SumBy(s.Tasks, func(t entity.TaskRecord) int { return t.ActualSeconds })
		return total >= seconds
	}
}

// completionDays returns the distinct calendar dates with at least one
// completed task, ascending. Tasks without a usable completion timestamp do
// not contribute.
func completionDays(tasks []entity.TaskRecord) []time.Time {
	seen := map[time.Time]struct{}{}
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil {
			seen[entity.DateOf(*t.CompletedAt)] = struct{}{}
		}
	}
	days := lo.Keys(seen)
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// longestStreak returns the longest run of consecutive calendar dates.
func longestStreak(days []time.Time) int {
	longest, current := 0, 0
	for i, day := range days {
		if i > 0 && day.Sub(days[i-1]) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

// startOfWeek returns the Monday of the week containing day.
func startOfWeek(day time.Time) time.Time {
	day = entity.DateOf(day)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// planningDay resolves the day a task was planned for: its scheduled date,
// falling back to its completion date.
func planningDay(t entity.TaskRecord) (time.Time, bool) {
	if t.ScheduledDate != nil {
		return entity.DateOf(*t.ScheduledDate), true
	}
	if t.CompletedAt != nil {
		return entity.DateOf(*t.CompletedAt), true
	}
	return time.Time{}, false
}
