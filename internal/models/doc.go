// Package models defines the topic editing state and the persisted entities of topix.
//
// The package contains three groups of types:
//
// 1. Editing state: immutable snapshots driven by the topics screen
//   - [TopicEntry] : one name/description row being edited
//   - [TopicList] : ordered, copy-on-write sequence of entries
//   - [Field] : the editable columns of an entry
//
// 2. Wire types: the body of the create topics request
//   - [TopicRecord] : an entry with its positional topicID and course reference
//   - [CourseRef] : the course the batch belongs to
//
// 3. Persistent entities: journal records of submission attempts
//   - [Submission] : one batch attempt with its outcome
//
// Every [TopicList] mutation returns a new snapshot and leaves the receiver untouched,
// so a view rendering an older snapshot never observes a later edit.
package models
