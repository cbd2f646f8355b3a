package service

import "errors"

var (
	// ErrNotFound は指定した項目・見積が存在しない場合に返される
	ErrNotFound = errors.New("not found")
	// ErrNameRequired は名前なしで見積を保存しようとした場合に返される
	ErrNameRequired = errors.New("quote name is required")
	// ErrInvalidData はインポートデータの形式が不正な場合に返される
	ErrInvalidData = errors.New("invalid data")
	// ErrWageIndex は賃金リストの範囲外を指定した場合に返される
	ErrWageIndex = errors.New("wage index out of range")
)
