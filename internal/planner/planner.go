// Package planner computes the weekly meal-planner grid.
package planner

import (
	"fmt"
	"strings"
	"time"
)

// Meals are the planner slots of each day, in display order.
var Meals = []string{"Breakfast", "Lunch", "Dinner"}

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Day is one column of the planner.
type Day struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"` // Mon..Sun
}

// Week returns Monday through Sunday of the week containing now, in now's
// location.
func Week(now time.Time) []Day {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	monday := time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())

	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, Day{
			Date: monday.AddDate(0, 0, i).Format(time.DateOnly),
			Name: dayNames[i],
		})
	}
	return days
}

// SlotKey builds the storage key for a day and meal.
func SlotKey(date, meal string) string {
	return date + "_" + meal
}

// ParseSlot validates a slot key and returns its date and canonical meal
// name. The meal name is matched case-insensitively.
func ParseSlot(slot string) (date, meal string, err error) {
	i := strings.LastIndex(slot, "_")
	if i < 0 {
		return "", "", fmt.Errorf("invalid slot %q (use YYYY-MM-DD_Meal)", slot)
	}
	date, meal = slot[:i], slot[i+1:]
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return "", "", fmt.Errorf("invalid slot date %q: %w", date, err)
	}
	for _, m := range Meals {
		if strings.EqualFold(m, meal) {
			return date, m, nil
		}
	}
	return "", "", fmt.Errorf("invalid meal %q (valid: %s)", meal, strings.Join(Meals, ", "))
}

// Slot is one cell of the planner grid.
type Slot struct {
	Key  string
	Date string
	Day  string
	Meal string
}

// Slots returns every slot of the week containing now, day by day.
func Slots(now time.Time) []Slot {
	out := make([]Slot, 0, 7*len(Meals))
	for _, d := range Week(now) {
		for _, m := range Meals {
			out = append(out, Slot{Key: SlotKey(d.Date, m), Date: d.Date, Day: d.Name, Meal: m})
		}
	}
	return out
}
