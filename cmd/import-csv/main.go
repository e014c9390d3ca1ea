package main

import "reviewhub/cmd/import-csv/command"

func main() {
	command.Execute()
}
