package models

import "time"

// Record statuses. Waiting and judging are transient; every other status is
// terminal and makes the record eligible for scoring.
const (
	RecordStatusWaiting             = "waiting"
	RecordStatusJudging             = "judging"
	RecordStatusAccepted            = "accepted"
	RecordStatusWrongAnswer         = "wrong_answer"
	RecordStatusTimeLimitExceeded   = "time_limit_exceeded"
	RecordStatusMemoryLimitExceeded = "memory_limit_exceeded"
	RecordStatusRuntimeError        = "runtime_error"
	RecordStatusCompileError        = "compile_error"
	RecordStatusSystemError         = "system_error"
)

// NonTerminalStatuses lists the statuses excluded from scoring queries.
var NonTerminalStatuses = []string{RecordStatusWaiting, RecordStatusJudging}

// Record is one submission attempt's judged outcome.
type Record struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index:idx_record_user_problem" json:"user_id"`
	ProblemID uint       `gorm:"not null;index:idx_record_user_problem" json:"problem_id"`
	Status    string     `gorm:"size:32;not null" json:"status"`
	Score     int64      `gorm:"not null;default:0" json:"score"`
	SubmitAt  time.Time  `gorm:"not null;index" json:"submit_at"`
	JudgedAt  *time.Time `json:"judged_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsTerminal reports whether judging has finished for this record.
func (r Record) IsTerminal() bool {
	return r.Status != RecordStatusWaiting && r.Status != RecordStatusJudging
}
