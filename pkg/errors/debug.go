package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorDump is an error chain flattened for structured logs.
type ErrorDump struct {
	Message   string    `json:"message"`
	Code      Code      `json:"code,omitempty"`
	Retryable bool      `json:"retryable,omitempty"`
	Details   any       `json:"details,omitempty"`
	Chain     []string  `json:"chain,omitempty"`
	Postgres  *PGDetail `json:"postgres,omitempty"`
}

// PGDetail is set when a postgres error sits in the chain (sql backend).
type PGDetail struct {
	Code       string `json:"code"`
	Table      string `json:"table,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Message    string `json:"message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}
	d := ErrorDump{Message: err.Error()}
	if typed := As(err); typed != nil {
		d.Code = typed.Code()
		d.Retryable = MetadataFor(d.Code).Retryable
		d.Details = typed.Details()
	}
	for cur := err; cur != nil; cur = stdErrors.Unwrap(cur) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", cur, cur))
	}
	var pgErr *pgconn.PgError
	if stdErrors.As(err, &pgErr) {
		d.Postgres = &PGDetail{
			Code:       pgErr.Code,
			Table:      pgErr.TableName,
			Constraint: pgErr.ConstraintName,
			Detail:     pgErr.Detail,
			Message:    pgErr.Message,
		}
	}
	return d
}

// Fields returns the non-empty parts of d keyed for logger.WithFields.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{}
	if d.Code != "" {
		fields["error_code"] = string(d.Code)
		fields["retryable"] = d.Retryable
	}
	if d.Details != nil {
		fields["error_details"] = d.Details
	}
	if len(d.Chain) > 1 {
		fields["error_chain"] = d.Chain
	}
	if d.Postgres != nil {
		fields["pg_code"] = d.Postgres.Code
		fields["pg_table"] = d.Postgres.Table
	}
	return fields
}
