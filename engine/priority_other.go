//go:build !linux

package engine

import "runtime"

func raisePriority() (func(), error) {
	runtime.LockOSThread()
	return func() { runtime.UnlockOSThread() }, nil
}
