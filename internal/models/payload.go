package models

// CourseRef is the course reference embedded in each [TopicRecord].
type CourseRef struct {
	CourseID int64 `json:"courseID" validate:"required,gt=0"`
}

// TopicRecord is one element of the create topics request body.
//
// TopicID is the entry's 0-based position at submission time, not a stable identifier.
type TopicRecord struct {
	TopicID     int       `json:"topicID" validate:"gte=0"`
	TopicName   string    `json:"topicName"`
	Description string    `json:"description"`
	Course      CourseRef `json:"course" validate:"required"`
}

// BuildPayload converts list into request records, in list order, for courseID.
func BuildPayload(list TopicList, courseID int64) []TopicRecord {
	records := make([]TopicRecord, list.Len())
	for i, entry := range list.entries {
		records[i] = TopicRecord{
			TopicID:     i,
			TopicName:   entry.TopicName,
			Description: entry.Description,
			Course:      CourseRef{CourseID: courseID},
		}
	}
	return records
}

// EntriesFromPayload is the inverse of [BuildPayload], ignoring topicIDs and course.
func EntriesFromPayload(records []TopicRecord) TopicList {
	entries := make([]TopicEntry, len(records))
	for i, r := range records {
		entries[i] = TopicEntry{TopicName: r.TopicName, Description: r.Description}
	}
	return TopicList{entries: entries}
}
