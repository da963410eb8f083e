package audit

import (
	"context"

	"github.com/weiawesome/amigos-chat/pkg/log"
)

// Audit actions for state-changing procedures.
const (
	ActionRegisterUser = "user.register"
	ActionCreateGroup  = "group.create"
	ActionJoinGroup    = "group.join"
	ActionSendMessage  = "message.send"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldActor  = "actor"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger. actor is
// the wallet address that triggered the action.
func Log(ctx context.Context, action string, actor string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(FieldActor, actor).
		Msg(msg)
}

// LogGroup is Log for actions scoped to a group.
func LogGroup(ctx context.Context, action string, actor string, groupID int64, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(FieldActor, actor).
		Int64(log.FieldGroupID, groupID).
		Msg(msg)
}

// LogWithDetail emits an audit log with extra detail field.
func LogWithDetail(ctx context.Context, action string, actor string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(FieldActor, actor).
		Str(FieldDetail, detail).
		Msg(msg)
}
