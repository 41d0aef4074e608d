// Command hrmsctl drives the HR portal pages from a terminal.
package main

func main() {
	Execute()
}
