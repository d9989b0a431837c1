package core

import "errors"

var errMissingEmployeeNumber = errors.New("employee number is empty")
