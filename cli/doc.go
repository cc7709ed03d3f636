// Package cli mirrors a running game onto the host terminal.
//
// The bot never reads from the host: the game's raw output is copied to
// the host screen as-is so a person can watch the run. Host switches to
// the alternate screen buffer on Start and puts the terminal back on Stop.
//
//	host := cli.New(cli.Options{})
//	if err := host.Start(); err != nil {
//	    return err
//	}
//	defer host.Stop()
//	relayCfg.Mirror = host
package cli
