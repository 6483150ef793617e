package types

import "errors"

var (
	ErrConnectionsFailed = errors.New("connection to CRM failed")
	ErrCantGetData       = errors.New("can't get data from CRM")
	ErrInvalidDate       = errors.New("invalid date format, allowed format is dd.mm.yyyy")
	ErrNotImplemented    = errors.New("not implemented")
)
