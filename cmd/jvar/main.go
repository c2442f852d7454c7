// Package main provides the jvar CLI application.
// jvar validates variant submissions and issues JVar accessions.
package main

import "github.com/ddbj/jvar/cmd"

func main() {
	cmd.Execute()
}
