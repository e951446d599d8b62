package model

import "errors"

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrDuplicateSKU     = errors.New("an item with this SKU already exists")
	ErrItemInactive     = errors.New("item is inactive")
	ErrInsufficientData = errors.New("item name and price are required")
)
