package prefs

// ActivityKind is an app event that can play a sound.
type ActivityKind string

const (
	ActivityTransactionSuccess ActivityKind = "transaction-success"
	ActivityTransactionFailed  ActivityKind = "transaction-failed"
	ActivityPINSuccess         ActivityKind = "pin-success"
	ActivityPINFailed          ActivityKind = "pin-failed"
	ActivityGoalAchieved       ActivityKind = "goal-achieved"
	ActivityBudgetExceeded     ActivityKind = "budget-exceeded"
	ActivityBackupComplete     ActivityKind = "backup-complete"
	ActivitySyncComplete       ActivityKind = "sync-complete"
)

// activityDefaults is the closed set of activities and their default sound.
var activityDefaults = []struct {
	kind    ActivityKind
	enabled bool
	volume  int
}{
	{ActivityTransactionSuccess, true, 60},
	{ActivityTransactionFailed, true, 70},
	{ActivityPINSuccess, false, 50},
	{ActivityPINFailed, true, 80},
	{ActivityGoalAchieved, true, 80},
	{ActivityBudgetExceeded, true, 70},
	{ActivityBackupComplete, true, 60},
	{ActivitySyncComplete, false, 40},
}

// AllActivities returns every activity kind.
func AllActivities() []ActivityKind {
	out := make([]ActivityKind, len(activityDefaults))
	for i, a := range activityDefaults {
		out[i] = a.kind
	}
	return out
}

// Valid reports whether k is a known activity.
func (k ActivityKind) Valid() bool {
	for _, a := range activityDefaults {
		if a.kind == k {
			return true
		}
	}
	return false
}

// SoundSetting configures the sound for one activity.
type SoundSetting struct {
	Enabled bool `yaml:"enabled"`
	Volume  int  `yaml:"volume"` // 0-100
}
