/*
Copyright © 2026 Paulo Suderio
*/
package main

import "github.com/suderio/dicelab/cmd"

func main() {
	cmd.Execute()
}
