package main

import "github.com/frahmantamala/project-dashboard/cmd"

func main() {
	cmd.Execute()
}
