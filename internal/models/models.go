package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DateFormat is the W3C date layout used for lastmod values.
const DateFormat = "2006-01-02"

type ChangeFreq string

const (
	ChangeAlways  ChangeFreq = "always"
	ChangeHourly  ChangeFreq = "hourly"
	ChangeDaily   ChangeFreq = "daily"
	ChangeWeekly  ChangeFreq = "weekly"
	ChangeMonthly ChangeFreq = "monthly"
	ChangeYearly  ChangeFreq = "yearly"
	ChangeNever   ChangeFreq = "never"
)

// Valid reports whether f is one of the protocol's change frequencies.
func (f ChangeFreq) Valid() bool {
	switch f {
	case ChangeAlways, ChangeHourly, ChangeDaily, ChangeWeekly, ChangeMonthly, ChangeYearly, ChangeNever:
		return true
	}
	return false
}

// PageRecord is one sitemap entry. LastMod is not stored per record; the
// whole run shares one date.
type PageRecord struct {
	Location   string     `json:"location"`
	Priority   float64    `json:"priority"`
	ChangeFreq ChangeFreq `json:"changefreq"`
}

// FormatPriority renders p with exactly one decimal place.
func FormatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}

func (r PageRecord) URL(lastMod string) URL {
	return URL{
		Loc:        r.Location,
		LastMod:    lastMod,
		ChangeFreq: string(r.ChangeFreq),
		Priority:   FormatPriority(r.Priority),
	}
}

// CountDuplicates returns how many records repeat an earlier location.
func CountDuplicates(records []PageRecord) int {
	seen := make(map[string]struct{}, len(records))
	dups := 0
	for _, r := range records {
		if _, ok := seen[r.Location]; ok {
			dups++
			continue
		}
		seen[r.Location] = struct{}{}
	}
	return dups
}

// Run is the recorded outcome of one generation.
type Run struct {
	ID             uuid.UUID `json:"id"`
	GeneratedOn    string    `json:"generatedOn"`
	BaseURL        string    `json:"baseUrl"`
	Mode           string    `json:"mode"`
	ScannedCount   int       `json:"scannedCount"`
	SyntheticCount int       `json:"syntheticCount"`
	DuplicateCount int       `json:"duplicateCount"`
	Files          []string  `json:"files"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewRun creates a run with generated UUID and timestamp
func NewRun(today time.Time) *Run {
	return &Run{
		ID:          uuid.New(),
		GeneratedOn: today.Format(DateFormat),
		CreatedAt:   time.Now(),
	}
}

// TotalURLs is the number of page entries written across all chunks.
func (r *Run) TotalURLs() int {
	return r.ScannedCount + r.SyntheticCount
}
