package util

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("record not found")
)

// 校验类错误，均可通过 errors.Is(err, ErrValidation) 判断
var (
	ErrNoQuestionsInScope = fmt.Errorf("%w: 当前范围内没有题目", ErrValidation)
	ErrInvalidSectionType = fmt.Errorf("%w: 无效的题型范围", ErrValidation)
	ErrInvalidGapType     = fmt.Errorf("%w: 无效的错因类型", ErrValidation)
	ErrEmptyGapDetail     = fmt.Errorf("%w: 错因详情不能为空", ErrValidation)
	ErrMissingFields      = fmt.Errorf("%w: 缺少必填字段", ErrValidation)
	ErrInvalidDateRange   = fmt.Errorf("%w: 日期范围无效", ErrValidation)
	ErrInvalidGapStatus   = fmt.Errorf("%w: 无效的状态", ErrValidation)
	ErrQuestionNotInPaper = fmt.Errorf("%w: 题目不属于该答题记录的试卷", ErrValidation)
)

var (
	ErrPaperNotFound    = fmt.Errorf("%w: 试卷不存在", ErrNotFound)
	ErrQuestionNotFound = fmt.Errorf("%w: 题目不存在", ErrNotFound)
	ErrAttemptNotFound  = fmt.Errorf("%w: 答题记录不存在", ErrNotFound)
	ErrGapNotFound      = fmt.Errorf("%w: 薄弱点不存在", ErrNotFound)
	ErrTaskNotFound     = fmt.Errorf("%w: 任务不存在", ErrNotFound)
)

// PersistenceError 包装存储层读写失败，消息原样透传给调用方
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
