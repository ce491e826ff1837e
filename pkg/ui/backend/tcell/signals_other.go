//go:build !unix

package tcell

import "os"

func raise(sig Signal) error {
	if sig == SignalInterrupt {
		p, err := os.FindProcess(os.Getpid())
		if err != nil {
			return err
		}
		return p.Signal(os.Interrupt)
	}
	return nil
}
