package models

import "errors"

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrMetricNotFound       = errors.New("metric not found")
	ErrGroupNotFound        = errors.New("user group not found")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrWeightNotFound       = errors.New("weight not found")
	ErrEmptyImport          = errors.New("import contains no projects")
	ErrDuplicateProjectCode = errors.New("duplicate project code")
	ErrInvalidProjectCode   = errors.New("project code is empty")
	ErrUnknownMetricField   = errors.New("unknown metric field")
	ErrUnknownRole          = errors.New("unknown role")
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}
