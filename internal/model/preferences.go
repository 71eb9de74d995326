package model

const DefaultDailyGoalMinutes = 240

// UserPreferences is the single user-tunable settings value. Durations is
// keyed by mode; missing keys fall back to DefaultDurations.
type UserPreferences struct {
	DailyGoalMinutes int            `json:"dailyGoalMinutes"`
	Durations        map[string]int `json:"durations"`
}

func DefaultPreferences() UserPreferences {
	durations := make(map[string]int, len(DefaultDurations))
	for mode, seconds := range DefaultDurations {
		durations[mode] = seconds
	}
	return UserPreferences{
		DailyGoalMinutes: DefaultDailyGoalMinutes,
		Durations:        durations,
	}
}

// MergePreferences overlays persisted values onto the built-in defaults key
// by key, so modes or fields added after the value was persisted still come
// out defined.
func MergePreferences(persisted UserPreferences) UserPreferences {
	merged := DefaultPreferences()
	if persisted.DailyGoalMinutes > 0 {
		merged.DailyGoalMinutes = persisted.DailyGoalMinutes
	}
	for mode, seconds := range persisted.Durations {
		merged.Durations[mode] = seconds
	}
	return merged
}

// ClonePreferences copies the value deeply enough that callers can mutate
// the result without aliasing the stored map.
func ClonePreferences(prefs UserPreferences) UserPreferences {
	durations := make(map[string]int, len(prefs.Durations))
	for mode, seconds := range prefs.Durations {
		durations[mode] = seconds
	}
	prefs.Durations = durations
	return prefs
}
