package seatplan

import "errors"

// ErrInvalidPlanFile indicates a plan document that is not valid JSON or
// does not have the plan document shape.
var ErrInvalidPlanFile = errors.New("invalid plan file")
