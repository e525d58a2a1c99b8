//go:build !windows

package main

import "syscall"

// sysProcAttr detaches the daemon from the controlling terminal so it
// survives the parent's session ending.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
