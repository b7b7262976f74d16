package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoFilePart       = errors.New("no file part")
	ErrNoSelectedFile   = errors.New("no selected file")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrTooLarge         = errors.New("request body too large")
	ErrImageTooLarge    = errors.New("image dimensions exceed limit")
)

// Stage: этап обработки, на котором произошёл сбой.
type Stage string

const (
	StageDecode Stage = "decode"
	StageRemove Stage = "remove"
	StageEncode Stage = "encode"
)

// ProcessError описывает сбой внутри decode → remove → encode.
// Детали предназначены только для логов сервера.
type ProcessError struct {
	Stage Stage
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s image: %v", e.Stage, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
