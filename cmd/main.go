// cmd/main.go
package main

import cmd "github.com/mwiater/coldplot/cmd/coldplot"

// main starts the coldplot CLI by delegating to the cobra root command
// defined in the coldplot package.
func main() {
	cmd.Execute()
}
