package main

import "github.com/ellavondegurechaff/gorpg/cmd"

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.Execute(version, commit)
}
