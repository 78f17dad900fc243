package importers

import (
	"encoding/json"
	"fmt"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Entry is a single diagnostic. Record holds the offending source row when
// there is one.
type Entry struct {
	Category string    `json:"category"`
	Detail   string    `json:"detail"`
	Record   RawRecord `json:"record,omitempty"`
}

// DiagnosticCounts is the number of entries per severity.
type DiagnosticCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c DiagnosticCounts) Add(o DiagnosticCounts) DiagnosticCounts {
	return DiagnosticCounts{
		Errors:   c.Errors + o.Errors,
		Warnings: c.Warnings + o.Warnings,
		Infos:    c.Infos + o.Infos,
	}
}

// Snapshot is the serialized form of a Diagnostics collector, written as
// <stage>-diagnostics.json.
type Snapshot struct {
	Stage    string  `json:"stage,omitempty"`
	Errors   []Entry `json:"errors"`
	Warnings []Entry `json:"warnings"`
	Infos    []Entry `json:"infos"`
}

// Summarize counts the entries of a snapshot.
func Summarize(s Snapshot) DiagnosticCounts {
	return DiagnosticCounts{
		Errors:   len(s.Errors),
		Warnings: len(s.Warnings),
		Infos:    len(s.Infos),
	}
}

// Diagnostics collects categorized findings for one stage of one run.
// It is append-only and not safe for concurrent use.
type Diagnostics struct {
	stage    string
	errors   []Entry
	warnings []Entry
	infos    []Entry
	onRecord func(Severity, Entry)
}

// NewDiagnostics creates an empty collector for a stage.
func NewDiagnostics(stage string) *Diagnostics {
	return &Diagnostics{stage: stage}
}

// OnRecord registers a callback invoked for every added entry.
func (d *Diagnostics) OnRecord(fn func(Severity, Entry)) {
	d.onRecord = fn
}

func (d *Diagnostics) Error(category string, rec RawRecord, format string, args ...any) {
	d.add(SeverityError, category, rec, format, args...)
}

func (d *Diagnostics) Warn(category string, rec RawRecord, format string, args ...any) {
	d.add(SeverityWarning, category, rec, format, args...)
}

func (d *Diagnostics) Info(category string, rec RawRecord, format string, args ...any) {
	d.add(SeverityInfo, category, rec, format, args...)
}

func (d *Diagnostics) add(sev Severity, category string, rec RawRecord, format string, args ...any) {
	e := Entry{Category: category, Detail: fmt.Sprintf(format, args...), Record: rec}
	switch sev {
	case SeverityError:
		d.errors = append(d.errors, e)
	case SeverityWarning:
		d.warnings = append(d.warnings, e)
	default:
		d.infos = append(d.infos, e)
	}
	if d.onRecord != nil {
		d.onRecord(sev, e)
	}
}

func (d *Diagnostics) Counts() DiagnosticCounts {
	return DiagnosticCounts{
		Errors:   len(d.errors),
		Warnings: len(d.warnings),
		Infos:    len(d.infos),
	}
}

// Categories returns how often each category was reported, across severities.
func (d *Diagnostics) Categories() map[string]int {
	out := make(map[string]int)
	for _, bucket := range [][]Entry{d.errors, d.warnings, d.infos} {
		for _, e := range bucket {
			out[e.Category]++
		}
	}
	return out
}

// Snapshot copies the collected entries into their serializable form.
func (d *Diagnostics) Snapshot() Snapshot {
	return Snapshot{
		Stage:    d.stage,
		Errors:   append([]Entry{}, d.errors...),
		Warnings: append([]Entry{}, d.warnings...),
		Infos:    append([]Entry{}, d.infos...),
	}
}

func (d *Diagnostics) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Snapshot())
}
