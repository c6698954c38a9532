package probe

import (
	"strconv"
	"time"
)

// Metadata identifies a probe. ID is stable for the process lifetime.
type Metadata struct {
	ID          string
	Name        string
	Description string
}

// Data is one named diagnostic value used to reach a verdict.
type Data struct {
	Name  string
	Value string
}

// Article is explanatory text for a (probe, status) pair.
type Article struct {
	ProbeID     string
	Status      Status
	Reason      string
	Remediation string
}

// KnowledgeBase looks up articles for probe verdicts.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: a missing article is reported as (Article{}, false), never an error.
type KnowledgeBase interface {
	TryGet(probeID string, status Status) (Article, bool)
}

// Result is the outcome of one probe evaluation.
type Result struct {
	ParentComponentID string
	ComponentID       string
	ComponentType     ComponentType
	ProbeID           string
	ProbeName         string
	Status            Status

	// Article is nil when no article is registered for ProbeID and Status.
	Article *Article

	// Data lists the values the verdict was derived from, in evaluation order.
	Data []Data

	Timestamp time.Time
}

// Value returns the value of the named data entry.
func (r Result) Value(name string) (string, bool) {
	for _, d := range r.Data {
		if d.Name == name {
			return d.Value, true
		}
	}
	return "", false
}

func uintData(name string, v uint64) Data {
	return Data{Name: name, Value: strconv.FormatUint(v, 10)}
}

func floatData(name string, v float64) Data {
	return Data{Name: name, Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

func boolData(name string, v bool) Data {
	return Data{Name: name, Value: strconv.FormatBool(v)}
}

func stringData(name, v string) Data {
	return Data{Name: name, Value: v}
}
