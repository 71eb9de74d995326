package model_test

import (
	"testing"

	"github.com/Madhesh247/Zenfocus/internal/model"
)

func TestMergePreferencesFillsMissingKeys(t *testing.T) {
	persisted := model.UserPreferences{
		DailyGoalMinutes: 0,
		Durations: map[string]int{
			model.ModePomodoro: 1800,
		},
	}

	merged := model.MergePreferences(persisted)
	if merged.DailyGoalMinutes != model.DefaultDailyGoalMinutes {
		t.Errorf("zero goal should take the default, got %d", merged.DailyGoalMinutes)
	}
	if merged.Durations[model.ModePomodoro] != 1800 {
		t.Errorf("persisted override lost: %d", merged.Durations[model.ModePomodoro])
	}
	if merged.Durations[model.ModeDeepWork] != 90*60 {
		t.Errorf("missing mode not defaulted: %d", merged.Durations[model.ModeDeepWork])
	}
}

func TestDefaultPreferencesIsIndependent(t *testing.T) {
	a := model.DefaultPreferences()
	a.Durations[model.ModePomodoro] = 1

	b := model.DefaultPreferences()
	if b.Durations[model.ModePomodoro] != 1500 {
		t.Error("DefaultPreferences shares state between calls")
	}
}
