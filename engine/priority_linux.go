//go:build linux

package engine

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// hapticNice is the niceness asked for the haptic thread; needs CAP_SYS_NICE below 0
const hapticNice = -10

// raisePriority locks the calling goroutine to its thread and lowers that thread's niceness
// The returned func unlocks the thread and must run on the same goroutine
func raisePriority() (func(), error) {
	runtime.LockOSThread()
	release := func() { runtime.UnlockOSThread() }

	if err := unix.Setpriority(unix.PRIO_PROCESS, unix.Gettid(), hapticNice); err != nil {
		return release, err
	}
	return release, nil
}
