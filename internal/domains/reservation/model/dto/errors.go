package dto

import "errors"

var ErrEmptySlot = errors.New("toTime must be after fromTime")
