package core

import (
	"errors"
	"fmt"
)

// Code classifies everything the engine can reject or report.
type Code int

const (
	NoError Code = iota
	StartMissing
	StartNotComplete
	NoRoundCourse
	ChosenPositionInvalid
	NoActivePlayers
	NoAvailableFields
	GameInAnimation
	WrongMapSyntax
	WrongBoardSize
	WrongBoardContents
	WrongCurrentPlayerOrDirection
	InvalidPlayerData
)

var codeNames = [...]string{
	NoError:                       "NoError",
	StartMissing:                  "StartMissing",
	StartNotComplete:              "StartNotComplete",
	NoRoundCourse:                 "NoRoundCourse",
	ChosenPositionInvalid:         "ChosenPositionInvalid",
	NoActivePlayers:               "NoActivePlayers",
	NoAvailableFields:             "NoAvailableFields",
	GameInAnimation:               "GameInAnimation",
	WrongMapSyntax:                "WrongMapSyntax",
	WrongBoardSize:                "WrongBoardSize",
	WrongBoardContents:            "WrongBoardContents",
	WrongCurrentPlayerOrDirection: "WrongCurrentPlayerOrDirection",
	InvalidPlayerData:             "InvalidPlayerData",
}

// String returns the name of the code.
func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	return codeNames[c]
}

// Fatal reports whether the code aborts the current load or action and
// sends the game back to the menu. The remaining codes are notices: the
// turn state is preserved and the caller retries.
func (c Code) Fatal() bool {
	switch c {
	case ChosenPositionInvalid, NoAvailableFields, GameInAnimation, NoError:
		return false
	default:
		return true
	}
}

// Error is a classified engine error.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%s]", e.Code)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is matches any *Error carrying the same code, so the sentinels below work
// with errors.Is regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from err. Nil maps to NoError; errors that carry
// no code map to -1.
func CodeOf(err error) Code {
	if err == nil {
		return NoError
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return -1
}

// Sentinels for errors.Is.
var (
	ErrStartMissing                  = &Error{Code: StartMissing}
	ErrStartNotComplete              = &Error{Code: StartNotComplete}
	ErrNoRoundCourse                 = &Error{Code: NoRoundCourse}
	ErrChosenPositionInvalid         = &Error{Code: ChosenPositionInvalid}
	ErrNoActivePlayers               = &Error{Code: NoActivePlayers}
	ErrNoAvailableFields             = &Error{Code: NoAvailableFields}
	ErrGameInAnimation               = &Error{Code: GameInAnimation}
	ErrWrongMapSyntax                = &Error{Code: WrongMapSyntax}
	ErrWrongBoardSize                = &Error{Code: WrongBoardSize}
	ErrWrongBoardContents            = &Error{Code: WrongBoardContents}
	ErrWrongCurrentPlayerOrDirection = &Error{Code: WrongCurrentPlayerOrDirection}
	ErrInvalidPlayerData             = &Error{Code: InvalidPlayerData}
)
