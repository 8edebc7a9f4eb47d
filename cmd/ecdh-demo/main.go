// Command ecdh-demo runs a toy elliptic-curve Diffie-Hellman exchange.
//
//	ecdh-demo run --a 2 --b 2 --p 17 --gx 5 --gy 1 --m 3 --n 7
//	ecdh-demo points --a 2 --b 2 --p 17 --top 5
//	ecdh-demo run --curve secp256k1 --json
//
// Every flag can also be set through an ECDH_ environment variable
// (ECDH_P=17, ECDH_LOG_LEVEL=debug) or a config file passed with --config.
package main

import (
	"os"
)

func main() {
	// Cobra prints the usage message and error string, so only the exit
	// status is left to set.
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
