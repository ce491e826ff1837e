//go:build unix

package tcell

import (
	"os"

	"golang.org/x/sys/unix"
)

func raise(sig Signal) error {
	switch sig {
	case SignalInterrupt:
		return unix.Kill(os.Getpid(), unix.SIGINT)
	case SignalQuit:
		return unix.Kill(os.Getpid(), unix.SIGQUIT)
	case SignalSuspend:
		return unix.Kill(os.Getpid(), unix.SIGTSTP)
	}
	return nil
}
