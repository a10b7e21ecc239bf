package database

import "errors"

var errMissingContext = errors.New("grave repository: missing database context")
