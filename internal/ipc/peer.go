package ipc

import (
	"fmt"
	"net"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"thermo/internal/device"
)

// peerCaller resolves the process on the other end of a Unix socket
// connection via SO_PEERCRED. Lookup is best effort; a zero-value caller
// means the credentials were unavailable.
func peerCaller(conn net.Conn) device.Caller {
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		return device.Caller{}
	}
	raw, err := uc.SyscallConn()
	if err != nil {
		return device.Caller{}
	}
	var cred *unix.Ucred
	ctrlErr := raw.Control(func(fd uintptr) {
		cred, err = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if ctrlErr != nil || err != nil || cred == nil {
		return device.Caller{}
	}
	return device.Caller{
		PID:  cred.Pid,
		Comm: processComm(cred.Pid),
	}
}

func processComm(pid int32) string {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
