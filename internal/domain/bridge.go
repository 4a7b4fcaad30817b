package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProcessingMode string

const (
	ProcessingModeRaw        ProcessingMode = "raw"
	ProcessingModeCompressed ProcessingMode = "compressed"
)

func (m ProcessingMode) IsValid() bool {
	switch m {
	case ProcessingModeRaw, ProcessingModeCompressed:
		return true
	}
	return false
}

// WatchSession is the live binding of one folder, event and processing mode
// to the detection pipeline. At most one is active per process.
type WatchSession struct {
	FolderPath     string         `json:"folder_path"`
	EventID        uuid.UUID      `json:"event_id"`
	ProcessingMode ProcessingMode `json:"processing_mode"`
	StartedAt      time.Time      `json:"started_at"`
}

type BridgeStatus struct {
	Active bool `json:"active"`
	*WatchSession
}

// StartBridgeInput accepts both the current snake_case body and the legacy
// {folderPath, eventId, uploadRaw} body.
type StartBridgeInput struct {
	FolderPath     string         `json:"folder_path"`
	EventID        string         `json:"event_id"`
	ProcessingMode ProcessingMode `json:"processing_mode"`

	LegacyFolderPath string `json:"folderPath"`
	LegacyEventID    string `json:"eventId"`
	UploadRaw        *bool  `json:"uploadRaw"`
}

func (in *StartBridgeInput) Normalize() {
	if in.FolderPath == "" {
		in.FolderPath = in.LegacyFolderPath
	}
	if in.EventID == "" {
		in.EventID = in.LegacyEventID
	}
	if in.ProcessingMode == "" {
		if in.UploadRaw != nil && *in.UploadRaw {
			in.ProcessingMode = ProcessingModeRaw
		} else {
			in.ProcessingMode = ProcessingModeCompressed
		}
	}
}

// UploadTask is one detected (or manually posted) file travelling through
// the processor, uploader and recorder.
type UploadTask struct {
	OriginalName   string
	SourcePath     string
	GeneratedKey   string
	ProcessingMode ProcessingMode
	EventID        uuid.UUID
}
