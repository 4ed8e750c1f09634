// Package libwin opens the GLFW window each exercise draws into.
//
// GLFW and the GL context it creates must only be touched from the main OS
// thread. Run hands the main thread over to a dispatcher and runs the
// application in its own goroutine; the application executes GL work with
// Do.
package libwin

import (
	"runtime"

	"github.com/faiface/mainthread"
)

func init() {
	runtime.LockOSThread()
}

// Run starts the dispatcher on the main thread and calls run from another
// goroutine. It returns when run returns. Must be called from main.
func Run(run func()) {
	mainthread.Run(run)
}

// Do executes f on the main thread and waits for it.
func Do(f func()) {
	mainthread.Call(f)
}

// DoErr is Do for functions that can fail.
func DoErr(f func() error) error {
	return mainthread.CallErr(f)
}
