package goldcard

import (
	"context"
	"strconv"
	"strings"
)

// Record is the metadata harvested from one GOLD card: an ordered mapping
// from label to value. Labels keep the position of their first insertion.
type Record struct {
	Goldstamp string

	labels []string
	values map[string]string
}

// NewRecord returns an empty record for the given goldstamp.
func NewRecord(goldstamp string) *Record {
	return &Record{
		Goldstamp: goldstamp,
		values:    make(map[string]string),
	}
}

// Set stores value under label. Setting an existing label replaces its value
// without moving it.
func (r *Record) Set(label, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[label]; !ok {
		r.labels = append(r.labels, label)
	}
	r.values[label] = value
}

// Get returns the value stored under label.
func (r *Record) Get(label string) (string, bool) {
	v, ok := r.values[label]
	return v, ok
}

// Len returns the number of labels in the record.
func (r *Record) Len() int {
	return len(r.labels)
}

// Labels returns the labels in insertion order.
func (r *Record) Labels() []string {
	labels := make([]string, len(r.labels))
	copy(labels, r.labels)
	return labels
}

// Values returns the values in label order.
func (r *Record) Values() []string {
	values := make([]string, len(r.labels))
	for i, label := range r.labels {
		values[i] = r.values[label]
	}
	return values
}

// String formats the record for progress output.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, label := range r.labels {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(label))
		b.WriteString(": ")
		b.WriteString(strconv.Quote(r.values[label]))
	}
	b.WriteByte('}')
	return b.String()
}

// RecordWriter persists harvested records.
type RecordWriter interface {
	WriteRecord(ctx context.Context, record *Record) error
}
