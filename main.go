package main

import "studytrack/cmd"

func main() {
	cmd.Execute()
}
