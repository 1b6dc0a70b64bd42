package domain

import "errors"

var (
	ErrNameRequired = errors.New("room name is required")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrBadPassword  = errors.New("wrong room password")
	ErrNotOwner     = errors.New("only the room owner may do that")
)
