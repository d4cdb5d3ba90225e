package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

// Memory is an in-memory implementation of interfaces.Repository for
// development and tests
type Memory struct {
	log     *logRepository
	finance *financeRepository
	user    *userRepository
}

var _ interfaces.Repository = &Memory{}

// New creates a new in-memory repository
func New() *Memory {
	return &Memory{
		log:     newLogRepository(),
		finance: newFinanceRepository(),
		user:    newUserRepository(),
	}
}

func (m *Memory) Log() interfaces.LogRepository {
	return m.log
}

func (m *Memory) Finance() interfaces.FinanceRepository {
	return m.finance
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Close() error {
	return nil
}
