package models

const (
	STATE_EXIST   = 1
	STATE_DELETED = 2
)
