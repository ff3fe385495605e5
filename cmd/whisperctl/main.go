// Command whisperctl is a thin CLI around the whisper package: create,
// write, info, dump and listen verbs. It is an external collaborator in
// the sense of the package's own design notes — flag parsing and process
// wiring live here, never inside the whisper package itself.
package main

import "os"

func main() {
	os.Exit(run())
}
