//go:build darwin || linux
// +build darwin linux

package logger

import (
	"os"

	"golang.org/x/sys/unix"
)

const SupportsColorEscapes = true

func GetTerminalInfo(file *os.File) TerminalInfo {
	fd := int(file.Fd())
	if _, err := unix.IoctlGetTermios(fd, ioctlReadTermios); err != nil {
		return TerminalInfo{}
	}

	info := TerminalInfo{IsTTY: true, UseColorEscapes: !hasNoColorEnvironmentVariable()}
	if size, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); err == nil {
		info.Width = int(size.Col)
	}
	return info
}
