//go:build !tinygo

package core

// defaultHalt blocks the calling goroutine forever (regular Go, for hosts)
func defaultHalt() {
	select {}
}
