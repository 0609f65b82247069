package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FailureKind — класс транспортного сбоя при обращении к каталогу.
type FailureKind string

const (
	FailureTimeout        FailureKind = "timeout"
	FailureNetwork        FailureKind = "network"
	FailureUpstreamStatus FailureKind = "upstream_status"
	FailureDecode         FailureKind = "decode"
)

// Error — сбой вызова каталога. "Не найдено" ошибкой не является:
// такие случаи возвращаются как nil/пустой список.
type Error struct {
	Kind   FailureKind
	Op     string // какой вызов упал: random, search_by_name, ...
	Status int    // HTTP-статус при FailureUpstreamStatus
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == FailureUpstreamStatus {
		return fmt.Sprintf("catalog %s: статус %d", e.Op, e.Status)
	}
	return fmt.Sprintf("catalog %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classifyTransport различает таймаут и прочие сетевые сбои.
func classifyTransport(op string, err error) *Error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return &Error{Kind: FailureTimeout, Op: op, Err: err}
	}
	return &Error{Kind: FailureNetwork, Op: op, Err: err}
}
