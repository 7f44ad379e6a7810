package testutil

import (
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"
)

// FreePort 운영체제가 할당한 빈 TCP 포트 번호를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("빈 포트 할당 실패: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForPort 로컬 포트가 연결을 수락할 때까지 대기합니다.
func WaitForPort(port int, timeout time.Duration) error {
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))

	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			return conn.Close()
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%s: %v 안에 연결을 수락하지 않았습니다: %w", addr, timeout, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
