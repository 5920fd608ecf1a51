package domain

import "time"

// universalSortable renders timestamps as "2006-01-02 15:04:05Z".
const universalSortable = "2006-01-02 15:04:05Z"

// StartAtDate is the moment a meeting begins. Values are normalized to UTC so
// that == compares instants.
type StartAtDate struct {
	value time.Time
}

// NewStartAtDate wraps t.
func NewStartAtDate(t time.Time) StartAtDate {
	return StartAtDate{value: t.UTC()}
}

func (d StartAtDate) Time() time.Time { return d.value }
func (d StartAtDate) IsZero() bool    { return d.value.IsZero() }
func (d StartAtDate) String() string  { return d.value.Format(universalSortable) }

func (d StartAtDate) Compare(other StartAtDate) int {
	return d.value.Compare(other.value)
}

// EndAtDate is the moment a meeting ends.
type EndAtDate struct {
	value time.Time
}

// NewEndAtDate wraps t.
func NewEndAtDate(t time.Time) EndAtDate {
	return EndAtDate{value: t.UTC()}
}

func (d EndAtDate) Time() time.Time { return d.value }
func (d EndAtDate) IsZero() bool    { return d.value.IsZero() }
func (d EndAtDate) String() string  { return d.value.Format(universalSortable) }

func (d EndAtDate) Compare(other EndAtDate) int {
	return d.value.Compare(other.value)
}
