package models

import "slices"

// TopicEntry is one name/description row on the topics screen.
type TopicEntry struct {
	TopicName   string
	Description string
}

// Field identifies an editable column of a [TopicEntry].
type Field string

const (
	FieldTopicName   Field = "topicName"
	FieldDescription Field = "description"
)

// Fields lists the editable columns in display order.
var Fields = []Field{FieldTopicName, FieldDescription}

func (f Field) String() string { return string(f) }

// Label is the human readable column name.
func (f Field) Label() string {
	switch f {
	case FieldTopicName:
		return "Topic Name"
	case FieldDescription:
		return "Description"
	default:
		return string(f)
	}
}

// Get returns the value of field f on e, or "" for an unknown field.
func (e TopicEntry) Get(f Field) string {
	switch f {
	case FieldTopicName:
		return e.TopicName
	case FieldDescription:
		return e.Description
	default:
		return ""
	}
}

// TopicList is an immutable, ordered snapshot of topic entries.
//
// Insertion order is display order and the order topicIDs are assigned in.
// The zero value is an empty list; screens start from [NewTopicList].
type TopicList struct {
	entries []TopicEntry
}

// NewTopicList returns the initial state: exactly one empty entry.
func NewTopicList() TopicList {
	return TopicList{entries: []TopicEntry{{}}}
}

// TopicListOf builds a snapshot holding a copy of entries.
func TopicListOf(entries ...TopicEntry) TopicList {
	return TopicList{entries: slices.Clone(entries)}
}

// Len returns the number of entries.
func (l TopicList) Len() int { return len(l.entries) }

// At returns the entry at index and whether index was in range.
func (l TopicList) At(index int) (TopicEntry, bool) {
	if index < 0 || index >= len(l.entries) {
		return TopicEntry{}, false
	}
	return l.entries[index], true
}

// Entries returns a copy of the entries; callers may modify it freely.
func (l TopicList) Entries() []TopicEntry {
	return slices.Clone(l.entries)
}

// Equal reports whether both snapshots hold the same entries in the same order.
func (l TopicList) Equal(other TopicList) bool {
	return slices.Equal(l.entries, other.entries)
}

// AddEntry appends an empty entry.
func (l TopicList) AddEntry() TopicList {
	next := make([]TopicEntry, len(l.entries), len(l.entries)+1)
	copy(next, l.entries)
	return TopicList{entries: append(next, TopicEntry{})}
}

// RemoveEntry deletes the entry at index, shifting later entries left by one.
//
// An out-of-range index returns an unchanged snapshot.
func (l TopicList) RemoveEntry(index int) TopicList {
	if index < 0 || index >= len(l.entries) {
		return l
	}
	next := make([]TopicEntry, 0, len(l.entries)-1)
	next = append(next, l.entries[:index]...)
	next = append(next, l.entries[index+1:]...)
	return TopicList{entries: next}
}

// UpdateField sets field f of the entry at index to value.
//
// An out-of-range index or unknown field returns an unchanged snapshot.
func (l TopicList) UpdateField(index int, f Field, value string) TopicList {
	if index < 0 || index >= len(l.entries) {
		return l
	}

	entry := l.entries[index]
	switch f {
	case FieldTopicName:
		entry.TopicName = value
	case FieldDescription:
		entry.Description = value
	default:
		return l
	}

	next := slices.Clone(l.entries)
	next[index] = entry
	return TopicList{entries: next}
}

// IsSubmittable reports whether list may be sent: the first entry's topic name must be non-empty.
//
// No other entry and no description is checked.
func IsSubmittable(list TopicList) bool {
	first, ok := list.At(0)
	return ok && first.TopicName != ""
}
