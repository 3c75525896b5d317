package history

import (
	"math"

	"github.com/2beens/trainingdiary/internal/diary"
)

type NutritionDay struct {
	Date   string            `json:"date"`
	Totals diary.MacroTotals `json:"totals"`
}

// GroupNutritionByDate sums the macros and calories of every date.
// Empty input gives an empty map.
func GroupNutritionByDate(entries []diary.NutritionLogEntry) map[string]diary.MacroTotals {
	totals := make(map[string]diary.MacroTotals)
	for _, e := range entries {
		totals[e.Date] = totals[e.Date].Add(e)
	}
	return totals
}

// SummarizeDay sums the entries of a single date. A date without entries
// gives zero totals.
func SummarizeDay(entries []diary.NutritionLogEntry, date string) diary.MacroTotals {
	var totals diary.MacroTotals
	for _, e := range entries {
		if e.Date == date {
			totals = totals.Add(e)
		}
	}
	return totals
}

// NutritionHistory returns the per-date totals, most recent first.
func NutritionHistory(entries []diary.NutritionLogEntry) []NutritionDay {
	grouped := GroupNutritionByDate(entries)
	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}

	history := make([]NutritionDay, 0, len(grouped))
	for _, date := range SortDatesDesc(dates) {
		history = append(history, NutritionDay{
			Date:   date,
			Totals: grouped[date],
		})
	}
	return history
}

// Progress compares one day's intake with the nutrition goals.
type Progress struct {
	Date   string               `json:"date"`
	Totals diary.MacroTotals    `json:"totals"`
	Goals  diary.NutritionGoals `json:"goals"`
	// Remaining never goes below zero.
	Remaining diary.MacroTotals `json:"remaining"`
	// Percent of each goal reached, 0 for a zero goal.
	Percent diary.MacroTotals `json:"percent"`
}

func DailyProgress(entries []diary.NutritionLogEntry, date string, goals diary.NutritionGoals) Progress {
	totals := SummarizeDay(entries, date)
	return Progress{
		Date:   date,
		Totals: totals,
		Goals:  goals,
		Remaining: diary.MacroTotals{
			Calories:     remaining(goals.Calories, totals.Calories),
			ProteinGrams: remaining(goals.ProteinGrams, totals.ProteinGrams),
			CarbGrams:    remaining(goals.CarbGrams, totals.CarbGrams),
			FatGrams:     remaining(goals.FatGrams, totals.FatGrams),
		},
		Percent: diary.MacroTotals{
			Calories:     percent(goals.Calories, totals.Calories),
			ProteinGrams: percent(goals.ProteinGrams, totals.ProteinGrams),
			CarbGrams:    percent(goals.CarbGrams, totals.CarbGrams),
			FatGrams:     percent(goals.FatGrams, totals.FatGrams),
		},
	}
}

func remaining(goal, total float64) float64 {
	if total >= goal {
		return 0
	}
	return goal - total
}

func percent(goal, total float64) float64 {
	if goal <= 0 {
		return 0
	}
	// two decimals
	return math.Round(total/goal*10000) / 100
}
