package main

import nutriwise "github.com/jakewoolfenden16/nutriwise-cli/cmd/nutriwise"

func main() {
	nutriwise.Execute()
}
