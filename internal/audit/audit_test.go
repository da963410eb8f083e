package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weiawesome/amigos-chat/pkg/log"
)

func TestLogGroup(t *testing.T) {
	req := require.New(t)

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(log.Config{Level: "info", Output: &buf}))

	LogGroup(ctx, ActionJoinGroup, "0xabc", 7, "user joined group")

	var entry map[string]any
	req.NoError(json.Unmarshal(buf.Bytes(), &entry))
	req.Equal(log.LogTypeAudit, entry[log.FieldLogType])
	req.Equal(ActionJoinGroup, entry[FieldAction])
	req.Equal("0xabc", entry[FieldActor])
	req.Equal(float64(7), entry[log.FieldGroupID])
}

func TestLogWithDetail(t *testing.T) {
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(log.Config{Level: "info", Output: &buf}))

	LogWithDetail(ctx, ActionSendMessage, "0xabc", "private", "message sent")

	require.Contains(t, buf.String(), `"detail":"private"`)
}
