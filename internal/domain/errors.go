package domain

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateName    = errors.New("name already exists")
	ErrSeatAlreadyTaken = errors.New("seat is already taken for this performance")
	ErrCapacityShrink   = errors.New("hall layout change would strand committed tickets")
	ErrSeatAccounting   = errors.New("committed tickets exceed hall capacity")
)
