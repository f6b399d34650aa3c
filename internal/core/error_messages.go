package core

// error_messages.go maps technical errors to messages a user can act on.
//
// Every category carries a short code users can quote when asking for
// help. Typed domain errors are matched first. Transport errors that only
// arrive as strings fall back to case-insensitive pattern matching, where
// the first matching pattern wins.
//
// Codes:
//
//	IMPORT_ENCODING    no candidate encoding decoded the file
//	IMPORT_COLUMNS     required columns missing from the CSV header
//	RECORD_NOT_FOUND   no record carries the requested sequence number
//	COLLECTION_EMPTY   the operation needs at least one record
//	FILE_TOO_LARGE     upload exceeds the configured size limit
//	FILE_MISSING       no file arrived with the request
//	FILE_EMPTY         the uploaded file has no content
//	REQUEST_CANCELLED  the client went away mid-request
//	REQUEST_TIMEOUT    the request ran past its deadline
//	UNEXPECTED         fallback when nothing above matches

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error strings (case-insensitive) to user
// messages. Patterns are matched with strings.Contains and the first match
// wins, so specific patterns must come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the upload size limit",
			Action:  "Split the CSV into smaller files and import them one at a time",
			Code:    "FILE_TOO_LARGE",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV file and try again",
			Code:    "FILE_MISSING",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a CSV file that contains data rows",
			Code:    "FILE_EMPTY",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Try again",
			Code:    "REQUEST_CANCELLED",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQUEST_TIMEOUT",
		},
	},
}

// defaultMessage is the fallback for unexpected errors. Check the
// application logs for the original technical error when users report
// UNEXPECTED.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Try again, and report the error code if it keeps happening",
	Code:    "UNEXPECTED",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := svc.ExportCSV()
//	msg := MapError(err)
//	// msg.Code == "COLLECTION_EMPTY"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var decErr *ImportDecodingError
	if errors.As(err, &decErr) {
		return UserMessage{
			Message: fmt.Sprintf("Could not read the file with any supported encoding (tried %s)", strings.Join(decErr.Tried, ", ")),
			Action:  "Save the file as UTF-8 or Shift_JIS and import it again",
			Code:    "IMPORT_ENCODING",
		}
	}

	var colErr *MissingColumnsError
	if errors.As(err, &colErr) {
		return UserMessage{
			Message: fmt.Sprintf("Required columns are missing: %s", strings.Join(colErr.Missing, ", ")),
			Action:  "Download the sample CSV and match its header row exactly",
			Code:    "IMPORT_COLUMNS",
		}
	}

	switch {
	case errors.Is(err, ErrRecordNotFound):
		return UserMessage{
			Message: "No record carries that number",
			Action:  "Refresh the record list and try again",
			Code:    "RECORD_NOT_FOUND",
		}
	case errors.Is(err, ErrEmptyCollection):
		return UserMessage{
			Message: "There are no records yet",
			Action:  "Add records or import a CSV first",
			Code:    "COLLECTION_EMPTY",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}
