package main

import "github.com/eximware/erp-data-api/cmd"

func main() {
	cmd.Execute()
}
