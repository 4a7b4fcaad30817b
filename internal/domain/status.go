package domain

import "time"

type StatusType string

const (
	StatusUploadStart   StatusType = "upload-start"
	StatusUploadSuccess StatusType = "upload-success"
	StatusUploadError   StatusType = "upload-error"
)

// StatusMessage is what live dashboards receive for every file lifecycle step.
type StatusMessage struct {
	Type  StatusType `json:"type"`
	Name  string     `json:"name"`
	Time  *time.Time `json:"time,omitempty"`
	Error string     `json:"error,omitempty"`
}

func UploadStarted(name string) StatusMessage {
	return StatusMessage{Type: StatusUploadStart, Name: name}
}

func UploadSucceeded(name string, at time.Time) StatusMessage {
	return StatusMessage{Type: StatusUploadSuccess, Name: name, Time: &at}
}

func UploadFailed(name string, err error) StatusMessage {
	return StatusMessage{Type: StatusUploadError, Name: name, Error: err.Error()}
}
