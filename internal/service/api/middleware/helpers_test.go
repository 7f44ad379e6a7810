package middleware

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/stretchr/testify/require"
)

// captureLogs 테스트 동안 로그 출력을 JSON 형식으로 버퍼에 기록합니다.
//
// pkg/log의 전역 상태를 변경하므로 이 헬퍼를 사용하는 테스트는 t.Parallel()을 사용할 수 없습니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logger := applog.StandardLogger()
	originalOut, originalFormatter, originalLevel := logger.Out, logger.Formatter, logger.GetLevel()
	t.Cleanup(func() {
		applog.SetOutput(originalOut)
		applog.SetFormatter(originalFormatter)
		applog.SetLevel(originalLevel)
	})

	buf := new(bytes.Buffer)
	applog.SetOutput(buf)
	applog.SetFormatter(&applog.JSONFormatter{})
	applog.SetLevel(applog.DebugLevel)

	return buf
}

// logEntries 버퍼에 기록된 JSON 로그를 줄 단위로 파싱합니다.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "로그 파싱 실패: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

// findLog msg가 일치하는 첫 번째 로그를 반환합니다.
func findLog(t *testing.T, buf *bytes.Buffer, msg string) map[string]any {
	t.Helper()

	for _, entry := range logEntries(t, buf) {
		if entry["msg"] == msg {
			return entry
		}
	}
	t.Fatalf("로그를 찾을 수 없습니다: %q\n%s", msg, buf.String())
	return nil
}
