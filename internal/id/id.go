package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	backupPrefix = "mywallet-selective-backup-"
	backupExt    = ".json"
	dateLayout   = "2006-01-02"
)

// FormatBackupName returns an export file name like
// "mywallet-selective-backup-2025-01-15.json". A positive seq disambiguates
// several exports on the same day: "...-2025-01-15-2.json".
func FormatBackupName(t time.Time, seq int) string {
	name := backupPrefix + t.UTC().Format(dateLayout)
	if seq > 0 {
		name += "-" + strconv.Itoa(seq)
	}
	return name + backupExt
}

// ParseBackupName parses a name produced by FormatBackupName.
func ParseBackupName(name string) (date time.Time, seq int, err error) {
	if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupExt) {
		return time.Time{}, 0, fmt.Errorf("not a backup file name: %q", name)
	}
	stem := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupExt)
	if len(stem) < len(dateLayout) {
		return time.Time{}, 0, fmt.Errorf("invalid date in backup name %q", name)
	}

	date, err = time.Parse(dateLayout, stem[:len(dateLayout)])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid date in backup name %q: %w", name, err)
	}

	rest := stem[len(dateLayout):]
	if rest == "" {
		return date, 0, nil
	}
	if !strings.HasPrefix(rest, "-") {
		return time.Time{}, 0, fmt.Errorf("invalid suffix in backup name %q", name)
	}
	seq, err = strconv.Atoi(rest[1:])
	if err != nil || seq <= 0 {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in backup name %q", name)
	}
	return date, seq, nil
}

// NewFlowID returns a random identifier for one export or import flow.
func NewFlowID() string {
	return uuid.NewString()
}
