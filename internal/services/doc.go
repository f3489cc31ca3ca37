// Package services implements the HTTP collaborators of the topics screen.
//
// # API Service
//
// [APIService] performs raw JSON requests against a base URL and returns an [APIResponse]
// holding the status, headers, body and decoded JSON (when the body is JSON). It does not
// interpret status codes.
//
// # Topic Service
//
// [TopicService] implements [TopicCreator] on top of [APIService]. It posts the whole batch
// to <base URL>/topic/multiple in a single attempt. There is no retry or backoff.
// [TopicService.ListTopics] reads back what the backend stored for a course.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx response
//   - [shared.ErrTimeout] : the request ran out of time (also wrapped in [shared.ErrAPIRequest])
//   - [shared.ErrMissingAPIURL] : no base URL configured
//   - [shared.ErrInvalidInput] : the payload could not be encoded
package services
