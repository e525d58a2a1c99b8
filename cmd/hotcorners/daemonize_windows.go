//go:build windows

package main

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// sysProcAttr detaches the daemon from the console so closing the terminal
// does not take the monitor with it.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
		HideWindow:    true,
	}
}
